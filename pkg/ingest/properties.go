package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// Property workbook columns.
const (
	colCity     = "city"
	colBasement = "basement"
	colHomeType = "type_of_home"
	colAddress  = "address"
	colCost     = "cost"
)

var propertyColumns = []string{
	colCity, colRooms, colGarages, colBasement, colHomeType, colAddress, colCost,
}

// ParseProperties reads a property workbook. Coordinates are not part of the
// feed; the ingestion service geocodes each address afterwards.
func ParseProperties(r io.Reader) ([]*models.Property, error) {
	header, rows, err := sheetRows(r, propertyColumns)
	if err != nil {
		return nil, invalid(err)
	}

	var properties []*models.Property
	var rowErrs []error
	for i, row := range rows {
		rowNum := i + 2
		property, err := parsePropertyRow(row, header)
		if err != nil {
			rowErrs = append(rowErrs, rowError(rowNum, err))
			continue
		}
		properties = append(properties, property)
	}

	if len(rowErrs) > 0 {
		return nil, invalid(errors.Join(rowErrs...))
	}
	return properties, nil
}

func parsePropertyRow(row []string, header map[string]int) (*models.Property, error) {
	city := cell(row, header, colCity)
	if city == "" {
		return nil, fmt.Errorf("column %s: empty value", colCity)
	}
	address := cell(row, header, colAddress)
	if address == "" {
		return nil, fmt.Errorf("column %s: empty value", colAddress)
	}

	rooms, err := parseNonNegativeInt(cell(row, header, colRooms), colRooms)
	if err != nil {
		return nil, err
	}
	garages, err := parseNonNegativeInt(cell(row, header, colGarages), colGarages)
	if err != nil {
		return nil, err
	}
	basement, err := parseBool(cell(row, header, colBasement), colBasement)
	if err != nil {
		return nil, err
	}
	cost, err := parseNonNegativeFloat(cell(row, header, colCost), colCost)
	if err != nil {
		return nil, err
	}

	return &models.Property{
		City:     city,
		Rooms:    rooms,
		Garages:  garages,
		Basement: basement,
		HomeType: cell(row, header, colHomeType),
		Address:  address,
		Cost:     cost,
	}, nil
}
