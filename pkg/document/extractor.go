package document

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("document has no extractable text")
)

var (
	reSpaces   = regexp.MustCompile(`[ \t]+`)
	reNewlines = regexp.MustCompile(`\n{3,}`)
)

// SupportedExtensions lists the upload formats Extract understands.
var SupportedExtensions = []string{".txt", ".md", ".csv", ".json", ".html", ".htm"}

// Extract turns an uploaded file into plain text, picking the parser by extension.
func Extract(fileName string, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: content is not valid UTF-8", ErrUnsupportedFormat)
	}

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md":
		text = string(content)
	case ".csv":
		text, err = csvToText(content)
	case ".json":
		text, err = jsonToText(content)
	case ".html", ".htm":
		text, err = htmlToText(content)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	text = Clean(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// Clean strips control characters and collapses runs of blanks.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	text = reSpaces.ReplaceAllString(text, " ")
	text = reNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// csvToText renders each row as "header: value" pairs so rows stay self-describing.
func csvToText(content []byte) (string, error) {
	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}

	header := records[0]
	if len(records) == 1 {
		return strings.Join(header, ", "), nil
	}

	var out []string
	for _, row := range records[1:] {
		pairs := make([]string, 0, len(row))
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if i < len(header) && strings.TrimSpace(header[i]) != "" {
				pairs = append(pairs, strings.TrimSpace(header[i])+": "+cell)
			} else {
				pairs = append(pairs, cell)
			}
		}
		if len(pairs) > 0 {
			out = append(out, strings.Join(pairs, "; "))
		}
	}
	return strings.Join(out, "\n"), nil
}

func jsonToText(content []byte) (string, error) {
	var v interface{}
	if err := json.Unmarshal(content, &v); err != nil {
		return "", err
	}
	var lines []string
	flattenJSON("", v, &lines)
	return strings.Join(lines, "\n"), nil
}

func flattenJSON(prefix string, v interface{}, lines *[]string) {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenJSON(key, val[k], lines)
		}
	case []interface{}:
		for i, child := range val {
			flattenJSON(fmt.Sprintf("%s[%d]", prefix, i), child, lines)
		}
	case nil:
	default:
		if prefix == "" {
			*lines = append(*lines, fmt.Sprint(val))
			return
		}
		*lines = append(*lines, fmt.Sprintf("%s: %v", prefix, val))
	}
}

// htmlToText keeps headings, paragraphs, list items and table rows.
func htmlToText(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	doc.Find("script,style,noscript").Remove()

	var out []string
	doc.Find("h1,h2,h3,h4,p,li,pre,tr").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "h1", "h2", "h3", "h4":
			out = append(out, "# "+strings.TrimSpace(s.Text()))
		case "li":
			out = append(out, "- "+strings.TrimSpace(s.Text()))
		case "tr":
			var cols []string
			s.Find("th,td").Each(func(_ int, c *goquery.Selection) {
				cols = append(cols, strings.TrimSpace(c.Text()))
			})
			out = append(out, strings.Join(cols, " | "))
		default:
			out = append(out, strings.TrimSpace(s.Text()))
		}
	})

	if len(out) == 0 {
		return strings.TrimSpace(doc.Find("body").Text()), nil
	}
	return strings.Join(out, "\n"), nil
}
