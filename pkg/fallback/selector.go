package fallback

import "strings"

// Entry pairs a keyword with the canned answer served when the keyword appears in a query.
type Entry struct {
	Keyword string
	Answer  string
}

// DefaultTable is consulted in order; earlier keywords win.
var DefaultTable = []Entry{
	{
		Keyword: "security",
		Answer:  "⌛ Allow 30-45 mins for security. Pack liquids in clear bags (100ml max), remove laptops, wear easy-off shoes.",
	},
	{
		Keyword: "lounge",
		Answer:  "💺 Most lounges require business class tickets or priority pass. Day passes often available (~$50). Locations near gates: ",
	},
	{
		Keyword: "connection",
		Answer:  "🔄 Minimum connection times: Domestic 45mins, International 90mins. Use airport maps or ask staff for fastest routes.",
	},
	{
		Keyword: "baggage",
		Answer:  "🛄 Checked bags usually due 60mins pre-flight. Carry-on max typically 7kg (varies by airline).",
	},
}

type Selector struct {
	table []Entry
}

func NewSelector(table []Entry) *Selector {
	entries := make([]Entry, len(table))
	for i, e := range table {
		entries[i] = Entry{Keyword: strings.ToLower(e.Keyword), Answer: e.Answer}
	}
	return &Selector{table: entries}
}

func NewDefaultSelector() *Selector {
	return NewSelector(DefaultTable)
}

// Select returns the answer of the first entry whose keyword is a
// case-insensitive substring of query.
func (s *Selector) Select(query string) (string, bool) {
	q := strings.ToLower(query)
	for _, e := range s.table {
		if e.Keyword != "" && strings.Contains(q, e.Keyword) {
			return e.Answer, true
		}
	}
	return "", false
}
