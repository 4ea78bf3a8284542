package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/pkg/errors"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	gmParser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var ErrInvalidFrontMatter = errors.New("invalid front matter")

const frontMatterDelimiter = "---"

// StoryDocument is a story read from a markdown file with a YAML front matter.
type StoryDocument struct {
	Story model.Story
	// Tags is nil when the front matter does not declare any
	Tags []string
}

// ParseStory reads the story attributes from the front matter of the document
// and uses its body as content. When no title is declared the text of the
// first heading is used.
func ParseStory(data []byte) (*StoryDocument, error) {
	md := New()

	context := gmParser.NewContext()

	root := md.Parser().Parse(
		text.NewReader(data),
		gmParser.WithContext(context),
	)

	metadata, err := meta.TryGet(context)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidFrontMatter, err.Error())
	}

	doc := &StoryDocument{}

	number, err := getInt(metadata, "number")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	doc.Story.Number = model.StoryNumber(number)

	if doc.Story.Year, err = getInt(metadata, "year"); err != nil {
		return nil, errors.WithStack(err)
	}

	if doc.Story.Day, err = getInt(metadata, "day"); err != nil {
		return nil, errors.WithStack(err)
	}

	doc.Story.Title = getString(metadata, "title")
	doc.Story.Prompt = getString(metadata, "prompt")

	if doc.Story.Title == "" {
		doc.Story.Title = findFirstHeading(root, data)
	}

	if doc.Tags, err = getStrings(metadata, "tags"); err != nil {
		return nil, errors.WithStack(err)
	}

	doc.Story.Content = strings.TrimSpace(string(stripFrontMatter(data)))

	return doc, nil
}

func getInt(metadata map[string]any, key string) (int, error) {
	raw, exists := metadata[key]
	if !exists {
		return 0, nil
	}

	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case string:
		value, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidFrontMatter, "'%s' is not an integer: %s", key, v)
		}

		return value, nil
	default:
		return 0, errors.Wrapf(ErrInvalidFrontMatter, "'%s' has unexpected type %T", key, raw)
	}
}

func getString(metadata map[string]any, key string) string {
	raw, exists := metadata[key]
	if !exists || raw == nil {
		return ""
	}

	return strings.TrimSpace(fmt.Sprintf("%v", raw))
}

func getStrings(metadata map[string]any, key string) ([]string, error) {
	raw, exists := metadata[key]
	if !exists || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case []any:
		values := make([]string, 0, len(v))
		for i, item := range v {
			value, ok := item.(string)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidFrontMatter, "'%s' item %d has unexpected type %T", key, i, item)
			}

			values = append(values, value)
		}

		return values, nil
	case string:
		values := make([]string, 0)
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				values = append(values, item)
			}
		}

		return values, nil
	default:
		return nil, errors.Wrapf(ErrInvalidFrontMatter, "'%s' has unexpected type %T", key, raw)
	}
}

func findFirstHeading(root ast.Node, source []byte) string {
	var title string

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		title = strings.TrimSpace(headingText(heading, source))

		return ast.WalkStop, nil
	})

	return title
}

// headingText concatenates the text of every inline node of the heading,
// emphasis and links included.
func headingText(heading *ast.Heading, source []byte) string {
	var sb strings.Builder

	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return sb.String()
}

// stripFrontMatter returns the document without its leading front matter
// block.
func stripFrontMatter(data []byte) []byte {
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) == 0 || string(bytes.TrimSpace(lines[0])) != frontMatterDelimiter {
		return data
	}

	offset := len(lines[0])
	for _, line := range lines[1:] {
		offset += len(line)
		if string(bytes.TrimSpace(line)) == frontMatterDelimiter {
			return data[offset:]
		}
	}

	return data
}
