// Package loader reads bemjson description sources into bemjson trees.
//
// Two source formats are accepted:
//
//   - JavaScript object/array literals (.js, .bemjson and anything unknown).
//     The text is first normalized by esbuild: comments and trailing commas
//     are dropped and the literal is re-printed. Every string literal is
//     then rewritten double-quoted, undefined becomes null, and the result
//     is decoded as YAML flow syntax.
//   - JSON and YAML (.json, .yaml, .yml), decoded directly.
//
// Unlike evaluating the source as JavaScript, executable code (calls,
// template literals, references to variables) is rejected.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/leapstack-labs/bemdeps/pkg/bemjson"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a description source.
type Format int

const (
	// FormatJS is a JavaScript object or array literal.
	FormatJS Format = iota
	// FormatYAML covers YAML and strict JSON.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJS:
		return "js"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJS
	}
}

// ReadDescription reads baseDir/src and parses it. An absolute src is used as is.
func ReadDescription(baseDir, src string) (bemjson.Node, error) {
	file := src
	if !filepath.IsAbs(file) {
		file = filepath.Join(baseDir, src)
	}

	data, err := os.ReadFile(file) //nolint:gosec // path comes from project configuration
	if err != nil {
		return nil, &SourceReadError{File: file, Message: "failed to read source", Err: err}
	}

	return Parse(file, data, DetectFormat(file))
}

// Parse decodes data in the given format. name is used in error messages only.
func Parse(name string, data []byte, format Format) (bemjson.Node, error) {
	text := string(data)
	if format == FormatJS {
		normalized, err := normalizeJS(name, text)
		if err != nil {
			return nil, err
		}
		text = normalized
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &SourceReadError{File: name, Message: fmt.Sprintf("invalid %s literal", format), Err: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &SourceReadError{File: name, Message: "source is empty"}
	}

	return convert(name, doc.Content[0])
}

// exportPrefix is prepended so the literal is parsed as an expression, which
// also allows a trailing semicolon in the source.
const exportPrefix = "module.exports = "

var exportPattern = regexp.MustCompile(`^\s*module\.exports\s*=\s*`)

// normalizeJS re-prints a JavaScript literal through esbuild.
func normalizeJS(name, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &SourceReadError{File: name, Message: "source is empty"}
	}

	result := api.Transform(exportPrefix+text, api.TransformOptions{
		Loader:        api.LoaderJS,
		Sourcefile:    name,
		Charset:       api.CharsetUTF8,
		LegalComments: api.LegalCommentsNone,
	})

	if len(result.Errors) > 0 {
		first := result.Errors[0]
		e := &SourceReadError{File: name, Message: "invalid js literal: " + first.Text}
		if first.Location != nil {
			e.Line = first.Location.Line
		}
		return "", e
	}

	// A source that assigns module.exports itself prints as a chained assignment.
	out := strings.TrimSpace(string(result.Code))
	for exportPattern.MatchString(out) {
		out = exportPattern.ReplaceAllString(out, "")
	}
	out = strings.TrimSuffix(out, ";")
	return requote(name, out)
}
