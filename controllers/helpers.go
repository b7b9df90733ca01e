package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// dateFormat is the wire format for start/end/payment dates.
const dateFormat = "2006-01-02"

// pathID extracts the numeric {id} route variable. ok is false when missing
// or malformed.
func pathID(r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id64, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// parseDate parses a required yyyy-mm-dd form value.
func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateFormat, value, time.Local)
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseAmount parses a decimal form value (price, payment amount).
func parseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}

// writeEmptySuccess ends a successful mutation with an empty body.
func writeEmptySuccess(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}
