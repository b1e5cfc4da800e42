package mysql

const createReviewsTableSQL = `
CREATE TABLE IF NOT EXISTS reviews (
  review_id   VARCHAR(64)  NOT NULL,
  review_body TEXT         NOT NULL,
  location    VARCHAR(128) NOT NULL,
  created_at  DATETIME     NOT NULL,
  PRIMARY KEY (review_id),
  KEY idx_reviews_location_created (location, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const insertReviewsPrefix = "INSERT INTO reviews\n  (review_id, review_body, location, created_at)\nVALUES "

// Re-running an ingest over the same file overwrites rows in place.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  review_body = VALUES(review_body),\n" +
	"  location    = VALUES(location),\n" +
	"  created_at  = VALUES(created_at)\n"

// Insertion order is not kept by InnoDB; created_at then id is the stable seed order.
const selectReviewsSQL = `
SELECT review_id, review_body, location, created_at
FROM reviews
ORDER BY created_at, review_id
`
