package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.13, Round2(10.125))
	assert.Equal(t, 0.0, Round2(0.004))
	assert.Equal(t, -3.46, Round2(-3.456))
}

type createDTO struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate" normalize:"-"`
}

type patchDTO struct {
	Name      *string  `json:"name"`
	Amount    *float64 `json:"amount"`
	ProjectID *string  `json:"project_id"`
	Skipped   *string  `json:"-"`
	Plain     string   `json:"plain"`
}

func TestNormalizeDTO(t *testing.T) {
	dto := &createDTO{Name: "  Hosting  ", Amount: 19.999, Rate: 0.075}
	NormalizeDTO(dto)
	assert.Equal(t, "Hosting", dto.Name)
	assert.Equal(t, 20.0, dto.Amount)
	assert.Equal(t, 0.075, dto.Rate)
}

func TestNormalizeDTO_PointerFields(t *testing.T) {
	name := " Travel "
	dto := &patchDTO{Name: &name}
	NormalizeDTO(dto)
	require.NotNil(t, dto.Name)
	assert.Equal(t, "Travel", *dto.Name)
	assert.Nil(t, dto.Amount)
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	amount := 12.5
	project := "p-1"
	skipped := "x"
	dto := &patchDTO{Amount: &amount, ProjectID: &project, Skipped: &skipped, Plain: "ignored"}

	got := UpdatesFromPtrDTO(dto, map[string]string{"project_id": "project_ref"})
	assert.Equal(t, map[string]any{"amount": 12.5, "project_ref": "p-1"}, got)
}

func TestUpdatesFromPtrDTO_EmptyReferenceClears(t *testing.T) {
	empty := ""
	got := UpdatesFromPtrDTO(&patchDTO{ProjectID: &empty, Name: &empty}, nil)
	assert.Equal(t, map[string]any{"project_id": nil, "name": ""}, got)
}

func TestUpdatesFromPtrDTO_NonPointer(t *testing.T) {
	assert.Empty(t, UpdatesFromPtrDTO(patchDTO{}, nil))
}

func TestParseDateParam(t *testing.T) {
	d, err := ParseDateParam("2024-07-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), *d)

	d, err = ParseDateParam("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDateParam("07/05/2024")
	assert.Error(t, err)
}

func TestParseDateParamEnd(t *testing.T) {
	d, err := ParseDateParamEnd("2024-07-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 5, 23, 59, 59, 999999999, time.UTC), *d)

	d, err = ParseDateParamEnd("2024-07-05T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC), *d)

	d, err = ParseDateParamEnd("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDateParamEnd("tomorrow")
	assert.Error(t, err)
}
