package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// Client workbook columns, matching the external feed's header row.
const (
	colName         = "name"
	colEmail        = "email"
	colCities       = "preferred_cities"
	colRooms        = "num_rooms"
	colGarages      = "num_garages"
	colBasementNeed = "basement_needed"
	colKidsUnder10  = "num_kids_under_10"
	colKidsUnder18  = "num_kids_under_18"
	colHomeTypePref = "type_of_home_preferred"
	colRace         = "race"
	colMaxBudget    = "maximum_budget"
)

var clientColumns = []string{
	colName, colEmail, colCities, colRooms, colGarages, colBasementNeed,
	colKidsUnder10, colKidsUnder18, colHomeTypePref, colRace, colMaxBudget,
}

// ParseClients reads a client workbook. Any invalid row rejects the whole
// file; ingestion is all-or-nothing so a feed typo never half-loads.
func ParseClients(r io.Reader) ([]*models.Client, error) {
	header, rows, err := sheetRows(r, clientColumns)
	if err != nil {
		return nil, invalid(err)
	}

	var clients []*models.Client
	var rowErrs []error
	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header row
		client, err := parseClientRow(row, header)
		if err != nil {
			rowErrs = append(rowErrs, rowError(rowNum, err))
			continue
		}
		clients = append(clients, client)
	}

	if len(rowErrs) > 0 {
		return nil, invalid(errors.Join(rowErrs...))
	}
	return clients, nil
}

func parseClientRow(row []string, header map[string]int) (*models.Client, error) {
	name := cell(row, header, colName)
	if name == "" {
		return nil, fmt.Errorf("column %s: empty value", colName)
	}
	email := cell(row, header, colEmail)
	if email == "" {
		return nil, fmt.Errorf("column %s: empty value", colEmail)
	}

	cities := splitCities(cell(row, header, colCities))
	if len(cities) == 0 {
		return nil, fmt.Errorf("column %s: at least one preferred city is required", colCities)
	}

	rooms, err := parseNonNegativeInt(cell(row, header, colRooms), colRooms)
	if err != nil {
		return nil, err
	}
	garages, err := parseNonNegativeInt(cell(row, header, colGarages), colGarages)
	if err != nil {
		return nil, err
	}
	basement, err := parseBool(cell(row, header, colBasementNeed), colBasementNeed)
	if err != nil {
		return nil, err
	}
	kidsUnder10, err := parseNonNegativeInt(cell(row, header, colKidsUnder10), colKidsUnder10)
	if err != nil {
		return nil, err
	}
	kidsUnder18, err := parseNonNegativeInt(cell(row, header, colKidsUnder18), colKidsUnder18)
	if err != nil {
		return nil, err
	}
	budget, err := parseNonNegativeFloat(cell(row, header, colMaxBudget), colMaxBudget)
	if err != nil {
		return nil, err
	}

	return &models.Client{
		Name:            name,
		Email:           email,
		PreferredCities: cities,
		MinRooms:        rooms,
		MinGarages:      garages,
		BasementNeeded:  basement,
		KidsUnder10:     kidsUnder10,
		KidsUnder18:     kidsUnder18,
		HomeType:        cell(row, header, colHomeTypePref),
		Ethnicity:       cell(row, header, colRace),
		MaxBudget:       budget,
	}, nil
}
