package settings

// Setting keys understood by the circulation service. Values are stored as
// strings and parsed on read; unparsable or missing values fall back to the
// defaults below.
const (
	KeyFineRatePercent  = "fine_rate_percent"
	KeyMaxBorrowDays    = "max_borrow_days"
	KeyMaxBooksPerUser  = "max_books_per_user"
	KeyMinDepositAmount = "min_deposit_amount"
)

// KnownKey reports whether key is one of the setting keys the service
// manages. Writes to other keys are rejected so typos do not create
// orphaned rows.
func KnownKey(key string) bool {
	switch key {
	case KeyFineRatePercent, KeyMaxBorrowDays, KeyMaxBooksPerUser, KeyMinDepositAmount:
		return true
	}

	return false
}

const (
	DefaultFineRatePercent  float64 = 5
	DefaultMaxBorrowDays            = 14
	DefaultMaxBooksPerUser          = 5
	DefaultMinDepositAmount int64   = 200000
)

// Policy is the materialized circulation policy handed to borrow
// operations. It is built per call, never cached, so setting changes take
// effect on the next read.
type Policy struct {
	FineRatePercent  float64
	MaxBorrowDays    int
	MaxBooksPerUser  int
	MinDepositAmount int64
}
