package xliff

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/pkg/xmltext"
)

// ErrNotFound is returned when the document is absent.
var ErrNotFound = errors.New("xliff document not found")

// FileStore is an XLIFF 1.2 file-backed Store. It extracts trans-unit
// segments on open and writes a normalized document on persist: inline
// markup inside source/target survives, surrounding structure it does not
// understand does not.
type FileStore struct {
	path  string
	units []TransUnit

	// file element attributes carried through to the output document
	sourceLang string
	targetLang string
	original   string
	datatype   string
}

// Open parses the XLIFF document at path.
func Open(ctx context.Context, path string) (*FileStore, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("opening xliff document")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, errors.Errorf("reading xliff document: %w", err)
	}

	s := &FileStore{path: path, datatype: "plaintext"}
	if err := s.parse(data); err != nil {
		return nil, err
	}
	return s, nil
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]TransUnit, error) {
	units := make([]TransUnit, len(s.units))
	copy(units, s.units)
	return units, nil
}

// Persist implements Store. The units replace the parsed ones and the whole
// document is rewritten at the store's path.
func (s *FileStore) Persist(ctx context.Context, units []TransUnit) (string, error) {
	return s.PersistTo(ctx, units, s.path)
}

// PersistTo writes the document to an alternate location, leaving the
// original untouched.
func (s *FileStore) PersistTo(ctx context.Context, units []TransUnit, path string) (string, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("units", len(units)).Msg("saving xliff document")

	s.units = units
	if err := os.WriteFile(path, s.encode(), 0o644); err != nil {
		return "", errors.Errorf("writing xliff document: %w", err)
	}
	return path, nil
}

// Stats summarizes the parsed units.
func (s *FileStore) Stats() Stats {
	return Summarize(s.units)
}

func (s *FileStore) parse(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var current *TransUnit
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &xmltext.ParseError{Path: s.path, Offset: dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "trans-unit" && current != nil {
				s.units = append(s.units, *current)
				current = nil
			}

		case xml.StartElement:
			switch t.Name.Local {
			case "file":
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "source-language":
						s.sourceLang = attr.Value
					case "target-language":
						s.targetLang = attr.Value
					case "original":
						s.original = attr.Value
					case "datatype":
						s.datatype = attr.Value
					}
				}

			case "trans-unit":
				if current != nil {
					s.units = append(s.units, *current)
				}
				u := TransUnit{}
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						u.ID = attr.Value
						continue
					}
					if u.Metadata == nil {
						u.Metadata = map[string]string{}
					}
					u.Metadata[attr.Name.Local] = attr.Value
				}
				current = &u

			case "source":
				if current == nil {
					continue
				}
				inner, err := readInner(dec, t.Name)
				if err != nil {
					return &xmltext.ParseError{Path: s.path, Offset: dec.InputOffset(), Err: err}
				}
				current.Source = inner

			case "target":
				if current == nil {
					continue
				}
				inner, err := readInner(dec, t.Name)
				if err != nil {
					return &xmltext.ParseError{Path: s.path, Offset: dec.InputOffset(), Err: err}
				}
				current.Target = inner

			default:
				// alt-trans and similar blocks carry their own source and
				// target elements; skip the whole subtree so TM suggestions
				// never shadow the unit's real segments
				if current != nil {
					if err := dec.Skip(); err != nil {
						return &xmltext.ParseError{Path: s.path, Offset: dec.InputOffset(), Err: err}
					}
				}
			}
		}
	}

	if current != nil {
		s.units = append(s.units, *current)
	}
	return nil
}

// readInner consumes tokens until the matching end element and rebuilds the
// inner content as raw markup. Text is re-escaped so the result is valid
// fragment text; inline elements keep their attributes and empty ones are
// written back self-closing so round-trips do not grow `<x/>` into `<x></x>`.
func readInner(dec *xml.Decoder, name xml.Name) (string, error) {
	var b strings.Builder
	depth := 0
	open := false // a start tag written without its closing '>'

	closeOpen := func() {
		if open {
			b.WriteString(">")
			open = false
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			closeOpen()
			depth++
			b.WriteString("<" + t.Name.Local)
			for _, attr := range t.Attr {
				fmt.Fprintf(&b, " %s=\"%s\"", attr.Name.Local, xmltext.Escape(attr.Value))
			}
			open = true
		case xml.EndElement:
			if depth == 0 && t.Name.Local == name.Local {
				return b.String(), nil
			}
			depth--
			if open {
				b.WriteString("/>")
				open = false
			} else {
				b.WriteString("</" + t.Name.Local + ">")
			}
		case xml.CharData:
			closeOpen()
			b.WriteString(xmltext.Escape(string(t)))
		}
	}
}

func (s *FileStore) encode() []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<xliff version=\"1.2\" xmlns=\"urn:oasis:names:tc:xliff:document:1.2\">\n")
	fmt.Fprintf(&b, "  <file original=\"%s\" source-language=\"%s\" target-language=\"%s\" datatype=\"%s\">\n",
		xmltext.Escape(s.original), xmltext.Escape(s.sourceLang), xmltext.Escape(s.targetLang), xmltext.Escape(s.datatype))
	b.WriteString("    <body>\n")

	for _, u := range s.units {
		fmt.Fprintf(&b, "      <trans-unit id=\"%s\"", xmltext.Escape(u.ID))
		for _, key := range sortedKeys(u.Metadata) {
			fmt.Fprintf(&b, " %s=\"%s\"", key, xmltext.Escape(u.Metadata[key]))
		}
		b.WriteString(">\n")
		fmt.Fprintf(&b, "        <source>%s</source>\n", u.Source)
		fmt.Fprintf(&b, "        <target>%s</target>\n", u.Target)
		b.WriteString("      </trans-unit>\n")
	}

	b.WriteString("    </body>\n  </file>\n</xliff>\n")
	return []byte(b.String())
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
