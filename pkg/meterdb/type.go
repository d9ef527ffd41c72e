package meterdb

type MeterDbIndexReading struct {
	Timestamp int64   `db:"timestamp"`
	Code      string  `db:"code"`
	Kwh       float64 `db:"kwh"`
}

type MeterDbPowerdownReading struct {
	Timestamp int64  `db:"timestamp"`
	Count     uint32 `db:"count"`
}
