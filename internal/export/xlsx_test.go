package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sessiondesk/internal/models"
)

func TestClients(t *testing.T) {
	email := "jane@example.com"
	phone := "+919876543210"
	clients := []models.ClientSummary{
		{Key: "client-1", Name: "Jane Doe", Email: &email, Phone: &phone, SessionCount: 2, RecordCount: 3, Therapist: "Ananya Rao", BookingIDs: []string{"bk-1", "bk-2"}},
		{Key: "client-2", Name: "Lead", BookingIDs: []string{}},
	}

	data, err := Clients(clients)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ClientsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ClientsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ClientsHeader, rows[0])
	assert.Equal(t, []string{"client-1", "Jane Doe", "jane@example.com", "+919876543210", "2", "3", "Ananya Rao", "bk-1, bk-2"}, rows[1])
	assert.Equal(t, "client-2", rows[2][0])
	assert.Equal(t, "Lead", rows[2][1])
	assert.Equal(t, "0", rows[2][4])
}

func TestClients_Empty(t *testing.T) {
	data, err := Clients(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ClientsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ClientsHeader, rows[0])
}
