package clickhouse

import "fmt"

// DailyCandleSchema returns the DDL for the daily OHLCV table. Rows are
// deduplicated on (symbol, date), keeping the latest insert.
func DailyCandleSchema(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s
(
    date    Date,
    symbol  LowCardinality(String),
    open    Float64,
    high    Float64,
    low     Float64,
    close   Float64,
    volume  Float64,
    ingested_at DateTime DEFAULT now()
)
ENGINE = ReplacingMergeTree(ingested_at)
ORDER BY (symbol, date)`, database, table),
	}
}
