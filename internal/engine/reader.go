package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-vcf2csv/internal/config"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrEncoding reports an input that is not valid UTF-8.
	ErrEncoding = errors.New(config.ErrEncoding)

	// ErrParse reports a malformed vCard stream. No contact is returned with it.
	ErrParse = errors.New(config.ErrVCardParse)

	// ErrTooLarge reports an input exceeding config.MaxInputSize.
	ErrTooLarge = errors.New(config.ErrInputTooLarge)
)

// utf8BOM is the byte order mark some exporters prepend to .vcf files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeContacts reads a whole vCard stream and returns its contacts in file order.
// Any decoding error aborts the whole stream.
func DecodeContacts(ctx context.Context, r io.Reader) ([]Contact, error) {
	raw, err := io.ReadAll(io.LimitReader(r, config.MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInputRead, err)
	}
	if len(raw) > config.MaxInputSize {
		return nil, ErrTooLarge
	}
	if !utf8.Valid(raw) {
		return nil, ErrEncoding
	}

	var src io.Reader = bytes.NewReader(normalizeBareParams(raw))
	if bytes.HasPrefix(raw, utf8BOM) {
		slog.Debug(config.MsgBOMStripped, config.LogKeyComponent, config.CompReader)
		src = transform.NewReader(src, unicode.UTF8BOM.NewDecoder())
	}

	decoder := vcard.NewDecoder(src)
	var contacts []Contact

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", ErrParse, len(contacts)+1, err)
		}

		c := ContactFromCard(card)
		slog.Debug(config.MsgCardDecoded,
			config.LogKeyComponent, config.CompReader,
			config.LogKeyIndex, len(contacts),
			config.LogKeyUID, valueOf(c.UID))
		contacts = append(contacts, c)
	}

	return contacts, nil
}

// ContactFromCard extracts the properties used by MapContact from a decoded card.
func ContactFromCard(card vcard.Card) Contact {
	c := Contact{
		Kind:          optionalValue(card, vcard.FieldKind),
		Gender:        optionalValue(card, vcard.FieldGender),
		UID:           optionalValue(card, vcard.FieldUID),
		FormattedName: optionalValue(card, vcard.FieldFormattedName),
		Note:          optionalValue(card, vcard.FieldNote),
		Birthday:      optionalValue(card, vcard.FieldBirthday),
	}

	if n := card.Get(vcard.FieldName); n != nil {
		parts := splitComponents(n.Value)
		c.Name = &StructuredName{
			Family:     component(parts, 0),
			Given:      component(parts, 1),
			Additional: component(parts, 2),
			Prefix:     component(parts, 3),
			Suffix:     component(parts, 4),
		}
	}

	if org := card.Get(vcard.FieldOrganization); org != nil {
		c.Organization = splitComponents(org.Value)
	}

	for _, f := range card[vcard.FieldEmail] {
		c.Emails = append(c.Emails, Email{Value: f.Value})
	}

	for _, f := range card[vcard.FieldTelephone] {
		c.Phones = append(c.Phones, Phone{Value: f.Value, Types: phoneTypes(f.Params)})
	}

	return c
}

// optionalValue returns the first value of a property, nil when absent.
func optionalValue(card vcard.Card, key string) *string {
	f := card.Get(key)
	if f == nil {
		return nil
	}
	return stringPtr(f.Value)
}

// phoneTypes collects the upper-cased category tags of a TEL property.
func phoneTypes(params vcard.Params) []string {
	var types []string
	for key, values := range params {
		if !strings.EqualFold(key, vcard.ParamType) {
			continue
		}
		for _, v := range values {
			for _, t := range strings.Split(v, config.VCardListSep) {
				if t = strings.TrimSpace(t); t != "" {
					types = append(types, strings.ToUpper(t))
				}
			}
		}
	}
	return types
}

// splitComponents splits a structured value (N, ORG) on ';'. The decoder
// already unescapes "\\", "\n" and "\," but leaves "\;" in place, so only
// that sequence is treated as a literal semicolon here.
func splitComponents(value string) []string {
	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch == '\\' && i+1 < len(value) && value[i+1] == config.VCardComponentSep[0]:
			i++
			cur.WriteByte(value[i])
		case ch == config.VCardComponentSep[0]:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	return append(parts, cur.String())
}

func component(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// normalizeBareParams rewrites vCard 2.1 bare parameters into TYPE form,
// e.g. "TEL;WORK;VOICE:555" becomes "TEL;TYPE=WORK,VOICE:555". The decoder
// would otherwise read the value as a parameter value.
func normalizeBareParams(raw []byte) []byte {
	if !bytes.Contains(raw, []byte(config.VCardComponentSep)) {
		return raw
	}
	var out bytes.Buffer
	out.Grow(len(raw))
	for _, line := range bytes.SplitAfter(raw, []byte("\n")) {
		out.Write(rewriteParams(line))
	}
	return out.Bytes()
}

// rewriteParams handles one physical line. Folded continuation lines and
// lines without parameters are returned unchanged.
func rewriteParams(line []byte) []byte {
	if len(line) == 0 || line[0] == ' ' || line[0] == '\t' {
		return line
	}

	colon := -1
	var seps []int
	inQuote := false
scan:
	for i, b := range line {
		switch {
		case b == '"':
			inQuote = !inQuote
		case inQuote:
		case b == ';':
			seps = append(seps, i)
		case b == ':':
			colon = i
			break scan
		}
	}
	if colon < 0 || len(seps) == 0 {
		return line
	}

	var params, bare []string
	for k, start := range seps {
		end := colon
		if k+1 < len(seps) {
			end = seps[k+1]
		}
		p := string(line[start+1 : end])
		switch {
		case strings.TrimSpace(p) == "":
		case strings.Contains(p, "="):
			params = append(params, p)
		default:
			bare = append(bare, strings.TrimSpace(p))
		}
	}
	if len(bare) == 0 {
		return line
	}

	joined := strings.Join(bare, config.VCardListSep)
	merged := false
	for i, p := range params {
		if key, _, _ := strings.Cut(p, "="); strings.EqualFold(strings.TrimSpace(key), vcard.ParamType) {
			params[i] = p + config.VCardListSep + joined
			merged = true
			break
		}
	}
	if !merged {
		params = append(params, vcard.ParamType+"="+joined)
	}

	var b strings.Builder
	b.Write(line[:seps[0]])
	for _, p := range params {
		b.WriteString(config.VCardComponentSep)
		b.WriteString(p)
	}
	b.Write(line[colon:])
	return []byte(b.String())
}
