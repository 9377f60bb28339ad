package specstore

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// defaultSectionPattern matches a section header introducing one
// event's documentation: "이벤트 이름: view_item" (or a bullet-prefixed
// variant). A site-specific pattern can be substituted via
// GuideOptions for sites whose guide uses a different label.
var defaultSectionPattern = regexp.MustCompile(`(?i)(?:•\s*)?이벤트\s*이름\s*:\s*([a-z_]+)`)

var (
	requiredFieldPattern        = regexp.MustCompile(`(?i)필수\s*(?:여부)?\s*:\s*([^\n]+)`)
	firingConditionFieldPattern = regexp.MustCompile(`(?i)발생\s*조건\s*:\s*([^\n]+)`)
	allowedPageFieldPattern     = regexp.MustCompile(`(?i)허용\s*페이지\s*:\s*([^\n]+)`)
	requiredUIFieldPattern      = regexp.MustCompile(`(?i)필요\s*UI\s*:\s*([^\n]+)`)
	userActionFieldPattern      = regexp.MustCompile(`(?i)사용자\s*액션\s*:\s*([^\n]+)`)
)

// GuideOptions customizes guide parsing per site.
type GuideOptions struct {
	SectionPattern *regexp.Regexp // nil uses defaultSectionPattern
}

// ParseGuide parses a free-text or Markdown development guide into a
// merged map of event name to ParsedEventDefinition. Markdown sources
// are flattened to plain text with goldmark first so the same
// line-oriented field extraction works on both formats.
func ParseGuide(source []byte, opts GuideOptions) (map[string]*ParsedEventDefinition, error) {
	plain, err := renderPlainText(source)
	if err != nil {
		// Fall back to treating the source as already-plain text —
		// a malformed Markdown document should not make the guide
		// unusable, only less richly parsed.
		plain = string(source)
	}

	pattern := opts.SectionPattern
	if pattern == nil {
		pattern = defaultSectionPattern
	}

	locs := pattern.FindAllStringSubmatchIndex(plain, -1)
	definitions := make(map[string]*ParsedEventDefinition)

	for i, loc := range locs {
		nameStart, nameEnd := loc[2], loc[3]
		eventName := strings.ToLower(strings.TrimSpace(plain[nameStart:nameEnd]))

		sectionStart := loc[1]
		sectionEnd := len(plain)
		if i+1 < len(locs) {
			sectionEnd = locs[i+1][0]
		}
		section := plain[sectionStart:sectionEnd]

		def := parseSection(eventName, section)

		if existing, ok := definitions[eventName]; ok {
			mergeDefinitions(existing, def)
		} else {
			definitions[eventName] = def
		}
	}

	return definitions, nil
}

func parseSection(eventName, section string) *ParsedEventDefinition {
	def := &ParsedEventDefinition{EventName: eventName}

	if m := requiredFieldPattern.FindStringSubmatch(section); m != nil {
		required := strings.TrimSpace(m[1])
		def.Required = strings.Contains(required, "필수") || strings.EqualFold(required, "required") || strings.EqualFold(required, "yes")
	}

	if m := firingConditionFieldPattern.FindStringSubmatch(section); m != nil {
		def.FiringCondition = strings.TrimSpace(m[1])
	}

	if m := allowedPageFieldPattern.FindStringSubmatch(section); m != nil {
		pages := strings.TrimSpace(m[1])
		if strings.EqualFold(pages, "ALL") || strings.Contains(pages, "전체") {
			def.AllPages = true
		} else {
			for _, p := range strings.FieldsFunc(pages, func(r rune) bool { return r == ',' || r == '/' || r == ' ' }) {
				p = strings.ToUpper(strings.TrimSpace(p))
				if p != "" {
					def.AllowedPageTypes = append(def.AllowedPageTypes, p)
				}
			}
		}
	}

	if m := requiredUIFieldPattern.FindStringSubmatch(section); m != nil {
		def.RequiredUI = strings.TrimSpace(m[1])
		lower := strings.ToLower(def.RequiredUI)
		if strings.Contains(lower, "none") || strings.Contains(lower, "없음") {
			def.AutoFire = true
		}
	}

	if m := userActionFieldPattern.FindStringSubmatch(section); m != nil {
		def.UserActionType = strings.TrimSpace(m[1])
		lower := strings.ToLower(def.UserActionType)
		if strings.Contains(lower, "click") || strings.Contains(lower, "클릭") || strings.Contains(lower, "터치") {
			def.RequiresUserAction = true
		}
	}

	return def
}

// mergeDefinitions applies the guide's merging rule for multiple
// mentions of the same event: allowed page types are unioned,
// required is disjunctively combined, firing-condition text is the
// first occurrence only.
func mergeDefinitions(dst, src *ParsedEventDefinition) {
	dst.Required = dst.Required || src.Required
	if dst.FiringCondition == "" {
		dst.FiringCondition = src.FiringCondition
	}
	if dst.AllPages || src.AllPages {
		dst.AllPages = true
		dst.AllowedPageTypes = nil
	} else {
		dst.AllowedPageTypes = unionStrings(dst.AllowedPageTypes, src.AllowedPageTypes)
	}
	if dst.RequiredUI == "" {
		dst.RequiredUI = src.RequiredUI
	}
	if dst.UserActionType == "" {
		dst.UserActionType = src.UserActionType
	}
	dst.AutoFire = dst.AutoFire || src.AutoFire
	dst.RequiresUserAction = dst.RequiresUserAction || src.RequiresUserAction
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// renderPlainText flattens a Markdown document's text content, in
// document order, with one newline between block-level elements —
// enough structure for the line-oriented field regexes above to work
// the same way they would over a plain-text guide.
func renderPlainText(source []byte) (string, error) {
	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	var buf bytes.Buffer
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch n.Kind() {
			case ast.KindParagraph, ast.KindHeading, ast.KindListItem, ast.KindTextBlock:
				buf.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindText:
			t := n.(*ast.Text)
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case ast.KindString:
			s := n.(*ast.String)
			buf.Write(s.Value)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
