package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// MissingSentinel is written in place of a value an external source did not provide.
const MissingSentinel = "missing"

// authorSeparator joins multiple author names into the single display string.
const authorSeparator = " and "

// Text is a string attribute that may be explicitly missing.
// The zero value is an absent field; Missing marks data an upstream source could not supply.
type Text struct {
	Content string
	Missing bool
}

// SomeText returns a present Text.
func SomeText(v string) Text {
	return Text{Content: v}
}

// MissingText returns the missing variant.
func MissingText() Text {
	return Text{Missing: true}
}

// ParseText maps the wire form back to a Text, treating the sentinel as missing.
func ParseText(s string) Text {
	if s == MissingSentinel {
		return MissingText()
	}
	return SomeText(s)
}

// IsZero reports whether the field was never set.
func (t Text) IsZero() bool {
	return !t.Missing && t.Content == ""
}

func (t Text) String() string {
	if t.Missing {
		return MissingSentinel
	}
	return t.Content
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("text field must be a string: %w", err)
	}
	*t = ParseText(s)
	return nil
}

// Value implements driver.Valuer so gorm stores the wire form.
func (t Text) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner.
func (t *Text) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Text{}
	case string:
		*t = ParseText(v)
	case []byte:
		*t = ParseText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Text", src)
	}
	return nil
}

// Authors is the ordered list of a book's authors.
type Authors struct {
	Names   []string
	Missing bool
}

// NewAuthors builds an author list; an empty input is the missing variant.
func NewAuthors(names ...string) Authors {
	if len(names) == 0 {
		return Authors{Missing: true}
	}
	return Authors{Names: names}
}

// ParseAuthors splits the joined display form.
func ParseAuthors(s string) Authors {
	switch s {
	case MissingSentinel:
		return Authors{Missing: true}
	case "":
		return Authors{}
	}
	return Authors{Names: strings.Split(s, authorSeparator)}
}

func (a Authors) String() string {
	if a.Missing {
		return MissingSentinel
	}
	return strings.Join(a.Names, authorSeparator)
}

// Contains reports whether name matches one of the authors, ignoring case.
func (a Authors) Contains(name string) bool {
	if a.Missing {
		return false
	}
	for _, n := range a.Names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func (a Authors) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either the joined string form or a list of names.
func (a *Authors) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = ParseAuthors(s)
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("authors must be a string or a list of strings: %w", err)
	}
	if len(names) == 1 && names[0] == MissingSentinel {
		*a = Authors{Missing: true}
		return nil
	}
	*a = Authors{Names: names}
	return nil
}

func (a Authors) Value() (driver.Value, error) {
	return a.String(), nil
}

func (a *Authors) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Authors{}
	case string:
		*a = ParseAuthors(v)
	case []byte:
		*a = ParseAuthors(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Authors", src)
	}
	return nil
}

// Languages holds the language codes a book is available in.
type Languages struct {
	Codes   []string
	Missing bool
}

// NewLanguages builds a language list; an empty input is the missing variant.
func NewLanguages(codes ...string) Languages {
	if len(codes) == 0 {
		return Languages{Missing: true}
	}
	return Languages{Codes: codes}
}

// Contains reports whether code is one of the languages, ignoring case.
func (l Languages) Contains(code string) bool {
	if l.Missing {
		return false
	}
	for _, c := range l.Codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// List returns the wire form of the languages.
func (l Languages) List() []string {
	if l.Missing {
		return []string{MissingSentinel}
	}
	if l.Codes == nil {
		return []string{}
	}
	return l.Codes
}

func (l Languages) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.List())
}

func (l *Languages) UnmarshalJSON(data []byte) error {
	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return fmt.Errorf("language must be a list of strings: %w", err)
	}
	if len(codes) == 1 && codes[0] == MissingSentinel {
		*l = Languages{Missing: true}
		return nil
	}
	if codes == nil {
		codes = []string{}
	}
	*l = Languages{Codes: codes}
	return nil
}

func (l Languages) Value() (driver.Value, error) {
	b, err := json.Marshal(l.List())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Languages) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = Languages{}
		return nil
	case string:
		return l.UnmarshalJSON([]byte(v))
	case []byte:
		return l.UnmarshalJSON(v)
	default:
		return fmt.Errorf("cannot scan %T into Languages", src)
	}
}
