package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-vcf2csv/internal/config"
	"github.com/tartampluch/go-vcf2csv/internal/engine"
)

const fullCard = "BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"KIND:individual\r\n" +
	"GENDER:F\r\n" +
	"UID:urn:uuid:4fbe8971-0bc3-424c-9c26-36c3e1eff6b1\r\n" +
	"FN:Dr. Jane Q. Doe\r\n" +
	"N:Doe;Jane;Q.;Dr.;PhD\r\n" +
	"ORG:Acme Corp;Research\r\n" +
	"EMAIL;TYPE=work:jane@acme.example\r\n" +
	"EMAIL;TYPE=home:jane@home.example\r\n" +
	"TEL;TYPE=cell:+33 6 00 00 00 01\r\n" +
	"TEL;TYPE=work,voice:+33 1 00 00 00 02\r\n" +
	"TEL:+33 1 00 00 00 03\r\n" +
	"NOTE:Prefers e-mail\r\n" +
	"BDAY:19850412\r\n" +
	"END:VCARD\r\n"

func TestDecodeContacts_FullCard(t *testing.T) {
	contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(fullCard))
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	require.NotNil(t, c.Name)
	assert.Equal(t, engine.StructuredName{
		Family: "Doe", Given: "Jane", Additional: "Q.", Prefix: "Dr.", Suffix: "PhD",
	}, *c.Name)
	require.NotNil(t, c.FormattedName)
	assert.Equal(t, "Dr. Jane Q. Doe", *c.FormattedName)
	assert.Equal(t, []string{"Acme Corp", "Research"}, c.Organization)

	require.Len(t, c.Emails, 2)
	assert.Equal(t, "jane@acme.example", c.Emails[0].Value)
	assert.Equal(t, "jane@home.example", c.Emails[1].Value)

	require.Len(t, c.Phones, 3)
	assert.True(t, c.Phones[0].HasType(config.TelTypeCell), "Tags are compared upper-cased")
	assert.True(t, c.Phones[1].HasType(config.TelTypeWork))
	assert.Empty(t, c.Phones[2].Types)

	row := engine.MapContact(c, config.Columns)
	assert.Equal(t, "Jane", row.Get(config.ColFirstName))
	assert.Equal(t, "Doe", row.Get(config.ColLastName))
	assert.Equal(t, "Acme Corp", row.Get(config.ColCompany))
	assert.Equal(t, "+33 6 00 00 00 01", row.Get(config.ColMobilePhone))
	assert.Equal(t, "+33 1 00 00 00 02", row.Get(config.ColBusinessPhone))
	assert.Equal(t, "+33 1 00 00 00 03", row.Get(config.ColOtherPhone))
	assert.Equal(t, "individual", row.Get(config.ColKind))
	assert.Equal(t, "F", row.Get(config.ColGender))
	assert.Equal(t, "urn:uuid:4fbe8971-0bc3-424c-9c26-36c3e1eff6b1", row.Get(config.ColUID))
	assert.Equal(t, "Prefers e-mail", row.Get(config.ColNotes))
	assert.Equal(t, "19850412", row.Get(config.ColBirthday))
}

// TestDecodeContacts_MinimalCard checks that absent properties stay absent.
func TestDecodeContacts_MinimalCard(t *testing.T) {
	input := "BEGIN:VCARD\nVERSION:3.0\nFN:Only Display\nEND:VCARD\n"

	contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Nil(t, c.Name)
	assert.Nil(t, c.Kind)
	assert.Nil(t, c.UID)
	assert.Nil(t, c.Note)
	assert.Nil(t, c.Birthday)
	assert.Nil(t, c.Organization)
	assert.Empty(t, c.Emails)
	assert.Empty(t, c.Phones)

	row := engine.MapContact(c, config.Columns)
	assert.Equal(t, "Only Display", row.Get(config.ColFirstName))
	assert.Empty(t, row.Get(config.ColLastName))
}

// TestDecodeContacts_PartialName ensures a short N value degrades to empty components.
func TestDecodeContacts_PartialName(t *testing.T) {
	input := "BEGIN:VCARD\nVERSION:3.0\nN:Doe\nEND:VCARD\n"

	contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	require.NotNil(t, contacts[0].Name)
	assert.Equal(t, engine.StructuredName{Family: "Doe"}, *contacts[0].Name)
}

func TestDecodeContacts_KeepsFileOrder(t *testing.T) {
	var sb strings.Builder
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		sb.WriteString("BEGIN:VCARD\nVERSION:3.0\nFN:" + name + "\nEND:VCARD\n")
	}

	contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Alpha", *contacts[0].FormattedName)
	assert.Equal(t, "Bravo", *contacts[1].FormattedName)
	assert.Equal(t, "Charlie", *contacts[2].FormattedName)
}

func TestDecodeContacts_Empty(t *testing.T) {
	contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestDecodeContacts_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFBEGIN:VCARD\nVERSION:3.0\nFN:Bom\nEND:VCARD\n"

	contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Bom", *contacts[0].FormattedName)
}

// TestDecodeContacts_Version21Params checks that bare vCard 2.1 parameters
// are read as phone categories and routed to their slots.
func TestDecodeContacts_Version21Params(t *testing.T) {
	input := "BEGIN:VCARD\r\n" +
		"VERSION:2.1\r\n" +
		"N:Doe;John\r\n" +
		"TEL;CELL:111\r\n" +
		"TEL;HOME;VOICE:222\r\n" +
		"TEL;WORK:333\r\n" +
		"TEL;PREF;TYPE=WORK:444\r\n" +
		"END:VCARD\r\n"

	contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	require.Len(t, c.Phones, 4)
	assert.Equal(t, "111", c.Phones[0].Value, "Value must not be swallowed by the parameter")
	assert.ElementsMatch(t, []string{config.TelTypeCell}, c.Phones[0].Types)
	assert.ElementsMatch(t, []string{config.TelTypeHome, "VOICE"}, c.Phones[1].Types)
	assert.ElementsMatch(t, []string{config.TelTypeWork, "PREF"}, c.Phones[3].Types)

	row := engine.MapContact(c, config.Columns)
	assert.Equal(t, "111", row.Get(config.ColMobilePhone))
	assert.Equal(t, "222", row.Get(config.ColHomePhone))
	assert.Equal(t, "333", row.Get(config.ColBusinessPhone))
	assert.Equal(t, "444", row.Get(config.ColBusinessPhone2))
	assert.Empty(t, row.Get(config.ColOtherPhone))
}

// TestDecodeContacts_EscapedSeparators ensures "\;" inside N and ORG stays
// part of the component instead of splitting it.
func TestDecodeContacts_EscapedSeparators(t *testing.T) {
	input := "BEGIN:VCARD\n" +
		"VERSION:3.0\n" +
		"N:D\\;oe;Jane;;;\n" +
		"ORG:Acme\\; Inc;Dept\n" +
		"END:VCARD\n"

	contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	require.NotNil(t, c.Name)
	assert.Equal(t, engine.StructuredName{Family: "D;oe", Given: "Jane"}, *c.Name)
	assert.Equal(t, []string{"Acme; Inc", "Dept"}, c.Organization)

	row := engine.MapContact(c, config.Columns)
	assert.Equal(t, "D;oe", row.Get(config.ColLastName))
	assert.Equal(t, "Jane", row.Get(config.ColFirstName))
	assert.Equal(t, "Acme; Inc", row.Get(config.ColCompany))
}

func TestDecodeContacts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"Invalid UTF-8", "BEGIN:VCARD\nFN:\xff\xfe\nEND:VCARD\n", engine.ErrEncoding},
		{"Not a vCard stream", "NOTE:this is not a vcard\n", engine.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, err := engine.DecodeContacts(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, contacts, "No partial contact list on failure")
		})
	}
}

func TestDecodeContacts_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.DecodeContacts(ctx, strings.NewReader(fullCard))
	assert.ErrorIs(t, err, context.Canceled)
}
