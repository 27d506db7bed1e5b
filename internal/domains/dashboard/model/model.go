package model

// GroupCount is a row of a GROUP BY count query.
type GroupCount struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

type Revenue struct {
	Bookings   int   `db:"bookings"`
	Gross      int64 `db:"gross"`
	Commission int64 `db:"commission"`
	Payout     int64 `db:"payout"`
}
