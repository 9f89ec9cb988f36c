// Package catalog implements reading and writing of strings-catalog files
// (.xcstrings / .json).
//
// A catalog is a JSON document with a "strings" object mapping each source
// key to an entry. Each entry may carry a "shouldTranslate" flag and a
// "localizations" object keyed by locale code, where every locale holds a
// "stringUnit" with "state" and "value" fields.
//
// Round-trip fidelity: the document is parsed into an ordered tree, mutated
// in place, and serialized with the original key order and every field the
// tool does not model (sourceLanguage, version, extractionState,
// substitutions, ...) preserved verbatim.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Translation lifecycle states. Any other value is passed through untouched.
const (
	StateNew         = "new"
	StateNeedsReview = "needs_review"
	StateTranslated  = "translated"
)

// sourceAliases are locale codes treated as the translation origin and
// excluded from target-language detection.
var sourceAliases = map[string]bool{
	"en":    true,
	"en-US": true,
	"Base":  true,
}

// ---------------------------------------------------------------------------
// Ordered JSON tree
// ---------------------------------------------------------------------------

type kind int

const (
	kindObject kind = iota
	kindArray
	kindString
	kindNumber
	kindBool
	kindNull
)

// node is one JSON value. Numbers keep their literal text so serialization
// never reformats them.
type node struct {
	kind kind
	obj  *object
	arr  []*node
	str  string // kindString
	lit  string // kindNumber / kindBool literal
}

// object is a JSON object with insertion order preserved.
type object struct {
	keys []string
	vals map[string]*node
}

func newObject() *object {
	return &object{vals: make(map[string]*node)}
}

func (o *object) get(key string) (*node, bool) {
	n, ok := o.vals[key]
	return n, ok
}

// set replaces the value for key, appending the key if it is new.
func (o *object) set(key string, n *node) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = n
}

func (o *object) childObject(key string) (*object, bool) {
	n, ok := o.vals[key]
	if !ok || n.kind != kindObject {
		return nil, false
	}
	return n.obj, true
}

func (o *object) childString(key string) (string, bool) {
	n, ok := o.vals[key]
	if !ok || n.kind != kindString {
		return "", false
	}
	return n.str, true
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// Document is a parsed strings catalog.
type Document struct {
	root *object
}

// ParseFile reads and parses a catalog from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse parses catalog content from a byte slice. The top-level value must
// be a JSON object.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("parsing catalog: expected top-level object, got %v", tok)
	}

	root, err := parseObject(dec)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// parseObject consumes object members up to and including the closing '}'.
// The opening '{' has already been read.
func parseObject(dec *json.Decoder) (*object, error) {
	o := newObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing object: expected string key, got %T", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("parsing value for %q: %w", key, err)
		}
		o.set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, fmt.Errorf("parsing object end: %w", err)
	}
	return o, nil
}

func parseArray(dec *json.Decoder) ([]*node, error) {
	var arr []*node
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, fmt.Errorf("parsing array end: %w", err)
	}
	return arr, nil
}

func parseValue(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj, err := parseObject(dec)
			if err != nil {
				return nil, err
			}
			return &node{kind: kindObject, obj: obj}, nil
		case '[':
			arr, err := parseArray(dec)
			if err != nil {
				return nil, err
			}
			return &node{kind: kindArray, arr: arr}, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return &node{kind: kindString, str: t}, nil
	case json.Number:
		return &node{kind: kindNumber, lit: t.String()}, nil
	case bool:
		lit := "false"
		if t {
			lit = "true"
		}
		return &node{kind: kindBool, lit: lit}, nil
	case nil:
		return &node{kind: kindNull}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// SourceLanguage returns the document's declared source language, if any.
func (d *Document) SourceLanguage() string {
	s, _ := d.root.childString("sourceLanguage")
	return s
}

// strings returns the "strings" object, or nil when the document does not
// follow the catalog schema.
func (d *Document) stringsObject() *object {
	o, ok := d.root.childObject("strings")
	if !ok {
		return nil
	}
	return o
}

// Entry is one translatable key with its per-locale localization units.
type Entry struct {
	key string
	obj *object
}

// Entries returns all entries in document order. Members of "strings" whose
// value is not an object are skipped.
func (d *Document) Entries() []*Entry {
	strs := d.stringsObject()
	if strs == nil {
		return nil
	}
	entries := make([]*Entry, 0, len(strs.keys))
	for _, key := range strs.keys {
		n := strs.vals[key]
		if n.kind != kindObject {
			continue
		}
		entries = append(entries, &Entry{key: key, obj: n.obj})
	}
	return entries
}

// Key returns the canonical source-language string for this entry.
func (e *Entry) Key() string { return e.key }

// ShouldTranslate reports whether the entry participates in translation.
// Absence of the flag means true.
func (e *Entry) ShouldTranslate() bool {
	n, ok := e.obj.get("shouldTranslate")
	if !ok || n.kind != kindBool {
		return true
	}
	return n.lit == "true"
}

// Locales returns the locale codes present in this entry's localizations,
// in document order.
func (e *Entry) Locales() []string {
	locs, ok := e.obj.childObject("localizations")
	if !ok {
		return nil
	}
	return append([]string(nil), locs.keys...)
}

// Unit is one locale's stringUnit within an entry.
type Unit struct {
	obj *object
}

// Unit returns the stringUnit for a locale, if present.
func (e *Entry) Unit(locale string) (*Unit, bool) {
	locs, ok := e.obj.childObject("localizations")
	if !ok {
		return nil, false
	}
	loc, ok := locs.childObject(locale)
	if !ok {
		return nil, false
	}
	su, ok := loc.childObject("stringUnit")
	if !ok {
		return nil, false
	}
	return &Unit{obj: su}, true
}

// SourceValue returns the source-locale text for this entry: the "en"
// unit's value when present, otherwise the key itself.
func (e *Entry) SourceValue() string {
	if u, ok := e.Unit("en"); ok {
		if v := u.Value(); v != "" {
			return v
		}
	}
	return e.key
}

// Value returns the unit's current text (empty when unset).
func (u *Unit) Value() string {
	s, _ := u.obj.childString("value")
	return s
}

// State returns the unit's lifecycle state (empty when unset).
func (u *Unit) State() string {
	s, _ := u.obj.childString("state")
	return s
}

// SetValue updates the unit's text in place.
func (u *Unit) SetValue(v string) {
	u.obj.set("value", &node{kind: kindString, str: v})
}

// SetState updates the unit's lifecycle state in place.
func (u *Unit) SetState(s string) {
	u.obj.set("state", &node{kind: kindString, str: s})
}

// ---------------------------------------------------------------------------
// Language detection
// ---------------------------------------------------------------------------

// DetectTargetLanguages returns the sorted set of locale codes present in
// any entry's localizations, minus the source-locale aliases (en, en-US,
// Base). A document without a "strings" object is a schema error.
func DetectTargetLanguages(d *Document) ([]string, error) {
	if d.stringsObject() == nil {
		return nil, fmt.Errorf("catalog has no \"strings\" object")
	}
	seen := make(map[string]bool)
	for _, e := range d.Entries() {
		for _, code := range e.Locales() {
			if !sourceAliases[code] {
				seen[code] = true
			}
		}
	}
	langs := make([]string, 0, len(seen))
	for code := range seen {
		langs = append(langs, code)
	}
	sort.Strings(langs)
	return langs, nil
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serialises the catalog with 2-space indentation, preserving key
// order. Non-ASCII text is written as UTF-8, not \u escapes.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNode(&buf, &node{kind: kindObject, obj: d.root}, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteFile serialises and writes the catalog to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeNode(buf *bytes.Buffer, n *node, depth int) error {
	switch n.kind {
	case kindObject:
		if len(n.obj.keys) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, key := range n.obj.keys {
			writeIndent(buf, depth+1)
			if err := writeString(buf, key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeNode(buf, n.obj.vals[key], depth+1); err != nil {
				return err
			}
			if i < len(n.obj.keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	case kindArray:
		if len(n.arr) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, el := range n.arr {
			writeIndent(buf, depth+1)
			if err := writeNode(buf, el, depth+1); err != nil {
				return err
			}
			if i < len(n.arr)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case kindString:
		return writeString(buf, n.str)
	case kindNumber, kindBool:
		buf.WriteString(n.lit)
	case kindNull:
		buf.WriteString("null")
	}
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

// writeString encodes s as a JSON string without HTML escaping, so text
// like "a < b" survives round-trips readably.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// ---------------------------------------------------------------------------
// Output path derivation
// ---------------------------------------------------------------------------

// knownExtensions are the catalog file extensions the tool accepts.
var knownExtensions = []string{".xcstrings", ".json"}

// HasKnownExtension reports whether path ends in a supported catalog
// extension.
func HasKnownExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range knownExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// DeriveOutputPath derives the output filename from the input filename:
// the known extension is stripped and "_translated" plus the same
// extension is appended. An unrecognized extension is kept as-is with the
// suffix appended before it.
func DeriveOutputPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + "_translated" + ext
}
