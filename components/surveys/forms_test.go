package surveys

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDimensionForm(t *testing.T) {
	form, err := DecodeDimensionForm(url.Values{
		FormFieldSlug:           {"region"},
		FormFieldTitleFi:        {" Alue "},
		FormFieldTitleEn:        {"Region"},
		FormFieldIsKeyDimension: {"on"},
		FormFieldIsMultiValue:   {"false"},
	})
	require.NoError(t, err)
	assert.Equal(t, DimensionForm{
		Slug:           "region",
		TitleFi:        "Alue",
		TitleEn:        "Region",
		IsKeyDimension: true,
	}, form)
}

func TestDecodeDimensionFormDerivesSlug(t *testing.T) {
	form, err := DecodeDimensionForm(url.Values{FormFieldTitleEn: {"Ticket Type"}})
	require.NoError(t, err)
	assert.Equal(t, "ticket-type", form.Slug)

	form, err = DecodeDimensionForm(url.Values{FormFieldTitleFi: {"Kanava"}})
	require.NoError(t, err)
	assert.Equal(t, "kanava", form.Slug)
}

func TestDecodeDimensionFormRejectsInvalidSlug(t *testing.T) {
	_, err := DecodeDimensionForm(url.Values{FormFieldSlug: {"Not A Slug!"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidForm))

	_, err = DecodeDimensionForm(url.Values{})
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestDecodeValueForm(t *testing.T) {
	form, err := DecodeValueForm(url.Values{
		FormFieldSlug:  {"north"},
		FormFieldColor: {"#AA00ff"},
	})
	require.NoError(t, err)
	assert.Equal(t, "north", form.Slug)
	assert.Equal(t, "#AA00ff", form.Color)

	_, err = DecodeValueForm(url.Values{FormFieldSlug: {"north"}, FormFieldColor: {"blue"}})
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestValueFormFieldsAllowClearingColor(t *testing.T) {
	fields := ValueFormFields(testMessages(t, "en"), "modal", &DimensionValue{Slug: "north", Color: "#ff0000"})
	require.Len(t, fields, 4)
	assert.Equal(t, FormFieldColor, fields[3].Name)
	assert.Equal(t, "text", fields[3].Type)
	assert.Equal(t, "#ff0000", fields[3].Value)
	assert.NotEmpty(t, fields[3].Pattern)
	assert.False(t, fields[3].Required)
	assert.True(t, fields[0].Required)

	blank := ValueFormFields(testMessages(t, "en"), "modal", &DimensionValue{Slug: "south"})
	assert.Empty(t, blank[3].Value)

	form, err := DecodeValueForm(url.Values{FormFieldSlug: {"south"}, FormFieldColor: {""}})
	require.NoError(t, err)
	assert.Empty(t, form.Color)
}
