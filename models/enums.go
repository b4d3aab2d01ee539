package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

type StockStatus string

const (
	StockStatusInStock    StockStatus = "IN_STOCK"
	StockStatusLimited    StockStatus = "LIMITED"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

func (s StockStatus) Valid() bool {
	switch s {
	case StockStatusInStock, StockStatusLimited, StockStatusOutOfStock:
		return true
	}
	return false
}

// Purchasable reports whether an offer with this status may become a
// candidate. LIMITED stock is still purchasable; only OUT_OF_STOCK drops.
func (s StockStatus) Purchasable() bool {
	return s == StockStatusInStock || s == StockStatusLimited
}

func (s StockStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *StockStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = StockStatus(v)
	case []byte:
		*s = StockStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into StockStatus", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid stock status %q", string(*s))
	}
	return nil
}

type OptimizationMode string

const (
	OptimizationModePrice       OptimizationMode = "price"
	OptimizationModeTime        OptimizationMode = "time"
	OptimizationModeConvenience OptimizationMode = "convenience"
)

// AllOptimizationModes is the fixed solve order for "all modes" requests.
var AllOptimizationModes = []OptimizationMode{
	OptimizationModePrice,
	OptimizationModeTime,
	OptimizationModeConvenience,
}

func (m OptimizationMode) Valid() bool {
	switch m {
	case OptimizationModePrice, OptimizationModeTime, OptimizationModeConvenience:
		return true
	}
	return false
}

func ParseOptimizationMode(s string) (OptimizationMode, error) {
	m := OptimizationMode(s)
	if !m.Valid() {
		return "", errors.New("optimization mode must be one of price, time, convenience")
	}
	return m, nil
}
