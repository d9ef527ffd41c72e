package meterdb

func InsertIndexReading(reading *MeterDbIndexReading) error {
	db := GetDB()

	_, err := db.Exec(
		"INSERT INTO index_readings (timestamp, code, kwh) "+
			"VALUES (?, ?, ?)",
		reading.Timestamp,
		reading.Code,
		reading.Kwh,
	)
	if err != nil {
		return err
	}
	return nil
}

func InsertPowerdownReading(reading *MeterDbPowerdownReading) error {
	db := GetDB()

	_, err := db.Exec(
		"INSERT INTO powerdown_readings (timestamp, count) "+
			"VALUES (?, ?)",
		reading.Timestamp,
		reading.Count,
	)
	if err != nil {
		return err
	}
	return nil
}
