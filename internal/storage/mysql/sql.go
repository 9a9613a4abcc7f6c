package mysql

const createKVTableSQL = `
CREATE TABLE IF NOT EXISTS kv_entries (
  k          VARCHAR(191) NOT NULL PRIMARY KEY,
  v          MEDIUMTEXT   NOT NULL,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin
`

const getKVSQL = `SELECT v FROM kv_entries WHERE k = ?`

// The whole list is written on every save; last write wins.
const upsertKVSQL = `
INSERT INTO kv_entries (k, v)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  v          = VALUES(v),
  updated_at = CURRENT_TIMESTAMP
`
