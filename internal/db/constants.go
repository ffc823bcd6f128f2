package db

// EventsTable is the table holding one row per event in a dataset database.
const EventsTable = "events"

// insertBatchSize bounds the rows written per transaction.
const insertBatchSize = 5000
