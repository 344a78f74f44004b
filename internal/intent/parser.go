package intent

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// Extraction patterns. Names are letter runs captured lazily up to a
// temporal or connective boundary.
var (
	reAddName = regexp.MustCompile(`(?i)add\s+(?:my\s+)?(?:friend\s+|colleague\s+|coworker\s+|family member\s+|mentor\s+)?([a-zA-Z][a-zA-Z ]*?)(?:\s+from\b|\s+to\b|\s*,|\s*$)`)

	rePriorityCmd = regexp.MustCompile(`(?i)(?:move|set|change)\s+([a-zA-Z][a-zA-Z ]*?)\s+(?:to\s+|as\s+)?(?:p|priority\s*)([123])\b`)

	reCategoryMove = regexp.MustCompile(`(?i)move\s+([a-zA-Z][a-zA-Z ]*?)\s+(?:from\s+[a-zA-Z ]+?\s+)?to\s+(?:the\s+)?([a-zA-Z]+)`)

	reLogName = regexp.MustCompile(`(?i)(?:hung out with|saw|met with|met up with|had coffee with|grabbed coffee with|had lunch with|had dinner with|dinner with|called|talked to|caught up with)\s+([a-zA-Z][a-zA-Z ]*?)(?:\s+yesterday\b|\s+today\b|\s+this week\b|\s+this month\b|\s+sometime\b|\s+and\b|\s+at\b|\s+for\b|\s*[.!?]*\s*$)`)

	reDescribeName = regexp.MustCompile(`(?i)(?:tell me about|info about|details about|what do you know about)\s+([a-zA-Z][a-zA-Z ]*?)\s*[.!?]*\s*$`)
)

// trailing words stripped from captured name spans
var nameStopwords = map[string]bool{
	"yesterday": true, "today": true, "and": true, "to": true,
	"sometime": true, "this": true, "week": true, "month": true,
}

// Parser converts one utterance into exactly one intent. Rules are
// evaluated in a fixed order; the first match wins, falling through to
// unrecognized. The order is part of the contract: add rules run before
// the move/set rules, which run before interaction logging and the
// generic query rules.
type Parser struct {
	rules   []rule
	entropy *rand.Rand
	now     func() time.Time
}

type rule struct {
	name  string
	apply func(p *Parser, raw, lower string) (Intent, bool)
}

// NewParser creates a parser with the standard rule order.
func NewParser() *Parser {
	p := &Parser{
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	p.rules = []rule{
		{"add-connection", (*Parser).parseAdd},
		{"update-priority", (*Parser).parsePriority},
		{"move-category", (*Parser).parseCategory},
		{"log-interaction", (*Parser).parseLog},
		{"query-overdue", (*Parser).parseOverdue},
		{"query-by-filter", (*Parser).parseFilter},
		{"describe-connection", (*Parser).parseDescribe},
		{"query-stats", (*Parser).parseStats},
	}
	return p
}

// Parse maps the utterance to an intent. It never fails; text that
// matches no rule comes back as KindUnrecognized with the original
// utterance attached.
func (p *Parser) Parse(text string) Intent {
	raw := strings.TrimSpace(text)
	lower := strings.ToLower(raw)
	for _, r := range p.rules {
		if in, ok := r.apply(p, raw, lower); ok {
			in.Text = raw
			return in
		}
	}
	return Intent{Kind: KindUnrecognized, Text: raw}
}

func (p *Parser) parseAdd(raw, lower string) (Intent, bool) {
	if !strings.Contains(lower, "add") {
		return Intent{}, false
	}
	if !containsAny(lower, "to my web", "to web", "my web", "friend", "colleague", "coworker", "family", "mentor") {
		return Intent{}, false
	}

	in := Intent{Kind: KindAddConnection, Relationship: model.RelFriend, Priority: model.P3}
	if m := reAddName.FindStringSubmatch(raw); m != nil {
		in.Name = cleanName(m[1])
	}

	switch {
	case containsAny(lower, "family", "sister", "brother", "mom", "dad", "cousin"):
		in.Relationship = model.RelFamily
	case containsAny(lower, "colleague", "coworker", "work"):
		in.Relationship = model.RelWork
	case containsAny(lower, "school", "college", "university"):
		in.Relationship = model.RelSchool
	}

	switch {
	case containsAny(lower, "p1", "priority 1"):
		in.Priority = model.P1
	case containsAny(lower, "p2", "priority 2"):
		in.Priority = model.P2
	}

	if containsAny(lower, "hung out", "met", "saw", "today", "yesterday") {
		in.HadInteraction = true
		in.Date = p.resolveDate(lower)
	}
	return in, true
}

// parsePriority handles move/set/change with an explicit tier token.
// When an utterance carries both a tier and a category token the tier
// wins; this is the documented precedence for the overloaded "move"
// verb.
func (p *Parser) parsePriority(raw, lower string) (Intent, bool) {
	if !containsAny(lower, "move", "set", "change") {
		return Intent{}, false
	}
	if !containsAny(lower, "p1", "p2", "p3", "priority") {
		return Intent{}, false
	}
	m := rePriorityCmd.FindStringSubmatch(raw)
	if m == nil {
		return Intent{}, false
	}
	return Intent{
		Kind:     KindUpdatePriority,
		Name:     cleanName(m[1]),
		Priority: model.Priority("P" + m[2]),
	}, true
}

func (p *Parser) parseCategory(raw, lower string) (Intent, bool) {
	if !strings.Contains(lower, "move") {
		return Intent{}, false
	}
	m := reCategoryMove.FindStringSubmatch(raw)
	if m == nil {
		return Intent{}, false
	}
	cat, ok := categoryToken(strings.ToLower(m[2]))
	if !ok {
		return Intent{}, false
	}
	return Intent{
		Kind:     KindMoveCategory,
		Name:     cleanName(m[1]),
		Category: cat,
	}, true
}

func (p *Parser) parseLog(raw, lower string) (Intent, bool) {
	if !containsAny(lower, "hung out", "saw", "met with", "met up with", "had coffee", "grabbed coffee", "had lunch", "had dinner", "dinner with", "called", "talked to", "caught up with") {
		return Intent{}, false
	}
	m := reLogName.FindStringSubmatch(raw)
	if m == nil {
		return Intent{}, false
	}
	return Intent{
		Kind:            KindLogInteraction,
		Name:            cleanName(m[1]),
		Date:            p.resolveDate(lower),
		InteractionType: inferType(lower),
	}, true
}

func (p *Parser) parseOverdue(raw, lower string) (Intent, bool) {
	if strings.Contains(lower, "who") &&
		containsAny(lower, "haven't talked", "havent talked", "haven't i talked", "longest", "should i reach out", "needs attention", "should i contact") {
		return Intent{Kind: KindQueryOverdue}, true
	}
	return Intent{}, false
}

func (p *Parser) parseFilter(raw, lower string) (Intent, bool) {
	if !containsAny(lower, "show me", "who are", "list my") {
		return Intent{}, false
	}

	var f Filter
	if strings.Contains(lower, "low") && strings.Contains(lower, "strength") {
		f.MaxStrength = 2
	}
	for _, rel := range []model.Relationship{model.RelWork, model.RelFamily, model.RelFriend, model.RelSchool, model.RelOther} {
		if strings.Contains(lower, string(rel)) {
			f.Relationship = rel
			break
		}
	}
	switch {
	case containsAny(lower, "p1", "priority 1"):
		f.Priority = model.P1
	case containsAny(lower, "p2", "priority 2"):
		f.Priority = model.P2
	case containsAny(lower, "p3", "priority 3"):
		f.Priority = model.P3
	}

	if f == (Filter{}) {
		return Intent{}, false
	}
	return Intent{Kind: KindQueryByFilter, Filter: f}, true
}

func (p *Parser) parseDescribe(raw, lower string) (Intent, bool) {
	m := reDescribeName.FindStringSubmatch(raw)
	if m == nil {
		return Intent{}, false
	}
	return Intent{Kind: KindDescribeConnection, Name: cleanName(m[1])}, true
}

func (p *Parser) parseStats(raw, lower string) (Intent, bool) {
	if containsAny(lower, "stats", "statistics", "how many") {
		return Intent{Kind: KindQueryStats}, true
	}
	return Intent{}, false
}

// resolveDate maps a temporal qualifier to a concrete date. "This week"
// and "this month" are intentionally coarse: a point somewhere inside
// the window, not an exact day.
func (p *Parser) resolveDate(lower string) time.Time {
	now := p.now()
	switch {
	case strings.Contains(lower, "yesterday"):
		return now.AddDate(0, 0, -1)
	case strings.Contains(lower, "this week"), strings.Contains(lower, "sometime"):
		return now.AddDate(0, 0, -p.entropy.Intn(7))
	case strings.Contains(lower, "this month"):
		return now.AddDate(0, 0, -(7 + p.entropy.Intn(23)))
	default:
		return now
	}
}

func inferType(lower string) model.InteractionType {
	switch {
	case containsAny(lower, "called", "phone"):
		return model.TypeCall
	case containsAny(lower, "coffee", "lunch", "dinner"):
		return model.TypeMeeting
	case strings.Contains(lower, "texted"):
		return model.TypeText
	case strings.Contains(lower, "emailed"):
		return model.TypeEmail
	default:
		return model.TypeSocial
	}
}

func categoryToken(tok string) (model.Relationship, bool) {
	switch {
	case strings.Contains(tok, "work"), strings.Contains(tok, "colleague"):
		return model.RelWork, true
	case strings.Contains(tok, "friend"):
		return model.RelFriend, true
	case strings.Contains(tok, "famil"):
		return model.RelFamily, true
	case strings.Contains(tok, "school"), strings.Contains(tok, "college"):
		return model.RelSchool, true
	case strings.Contains(tok, "other"):
		return model.RelOther, true
	}
	return "", false
}

// cleanName trims the captured span and strips trailing temporal or
// connective words the lazy capture may have swallowed.
func cleanName(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for len(words) > 0 && nameStopwords[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
