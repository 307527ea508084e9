package repository

// schema is the full DDL for the reporting store. Statements are idempotent
// so migration can run before every ingest.
//
// cuisine_info keeps the eight positional slots the dashboard tooling expects;
// unpivot_cuisines() folds them back into one row per (restaurant, cuisine).
// The function is STABLE and side-effect-free: it only projects the current
// contents of cuisine_info.
const schema = `
CREATE TABLE IF NOT EXISTS restaurant_info (
	restaurant_id        BIGINT PRIMARY KEY,
	restaurant_name      TEXT NOT NULL,
	city                 TEXT NOT NULL,
	locality             TEXT NOT NULL DEFAULT '',
	latitude             DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude            DOUBLE PRECISION NOT NULL DEFAULT 0,
	average_cost_for_two INTEGER NOT NULL,
	has_table_booking    BOOLEAN NOT NULL,
	has_online_delivery  BOOLEAN NOT NULL,
	price_range          SMALLINT NOT NULL CHECK (price_range BETWEEN 1 AND 4),
	aggregate_rating     DOUBLE PRECISION NOT NULL,
	rating_text          TEXT NOT NULL DEFAULT '',
	votes                INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cuisine_info (
	restaurant_id BIGINT PRIMARY KEY REFERENCES restaurant_info(restaurant_id),
	cuisine_1     TEXT NOT NULL DEFAULT '',
	cuisine_2     TEXT NOT NULL DEFAULT '',
	cuisine_3     TEXT NOT NULL DEFAULT '',
	cuisine_4     TEXT NOT NULL DEFAULT '',
	cuisine_5     TEXT NOT NULL DEFAULT '',
	cuisine_6     TEXT NOT NULL DEFAULT '',
	cuisine_7     TEXT NOT NULL DEFAULT '',
	cuisine_8     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS ingest_runs (
	run_id               UUID PRIMARY KEY,
	source               TEXT NOT NULL,
	status               TEXT NOT NULL,
	started_at           TIMESTAMPTZ NOT NULL,
	finished_at          TIMESTAMPTZ NOT NULL,
	rows_read            INTEGER NOT NULL,
	rows_ingested        INTEGER NOT NULL,
	rows_dropped_country INTEGER NOT NULL,
	rows_dropped_invalid INTEGER NOT NULL,
	cuisines_truncated   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_restaurant_info_city ON restaurant_info(city);
CREATE INDEX IF NOT EXISTS idx_restaurant_info_rating ON restaurant_info(aggregate_rating);

CREATE OR REPLACE FUNCTION unpivot_cuisines()
RETURNS TABLE (restaurant_id BIGINT, cuisine TEXT) AS $$
	SELECT restaurant_id, cuisine_1 FROM cuisine_info WHERE cuisine_1 <> ''
	UNION ALL
	SELECT restaurant_id, cuisine_2 FROM cuisine_info WHERE cuisine_2 <> ''
	UNION ALL
	SELECT restaurant_id, cuisine_3 FROM cuisine_info WHERE cuisine_3 <> ''
	UNION ALL
	SELECT restaurant_id, cuisine_4 FROM cuisine_info WHERE cuisine_4 <> ''
	UNION ALL
	SELECT restaurant_id, cuisine_5 FROM cuisine_info WHERE cuisine_5 <> ''
	UNION ALL
	SELECT restaurant_id, cuisine_6 FROM cuisine_info WHERE cuisine_6 <> ''
	UNION ALL
	SELECT restaurant_id, cuisine_7 FROM cuisine_info WHERE cuisine_7 <> ''
	UNION ALL
	SELECT restaurant_id, cuisine_8 FROM cuisine_info WHERE cuisine_8 <> ''
$$ LANGUAGE sql STABLE;
`
