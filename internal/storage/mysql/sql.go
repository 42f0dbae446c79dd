package mysql

const insertUserSQL = `
INSERT INTO users (email, full_name, hashed_password, role, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const selectUserCols = `
SELECT id, email, full_name, hashed_password, role, is_active, created_at
FROM users
`

const deleteUserSQL = `DELETE FROM users WHERE id = ?`

const insertFormSQL = `
INSERT INTO feedback_forms (uuid, name, question, owner_id, created_at)
VALUES (?, ?, ?, ?, ?)
`

const selectFormCols = `
SELECT id, uuid, name, question, owner_id, created_at
FROM feedback_forms
`

const deleteFormSQL = `DELETE FROM feedback_forms WHERE id = ?`

// Reviews are written fully annotated or not at all; there is no
// update path for the annotation fields.
const insertReviewPrefix = `
INSERT INTO reviews
  (owner_id, form_id, source, author, content, sentiment, sentiment_score, key_entities, created_at, analyzed_at)
VALUES `

const insertReviewRow = "(?,?,?,?,?,?,?,?,?,?)"

// Newest-first; aligns with the index on (owner_id, created_at, id).
const listReviewsByOwnerSQL = `
SELECT id, owner_id, form_id, source, author, content, sentiment, sentiment_score, key_entities, created_at, analyzed_at
FROM reviews
WHERE owner_id = ?
ORDER BY created_at DESC, id DESC
`

const listReviewsByFormSQL = `
SELECT id, owner_id, form_id, source, author, content, sentiment, sentiment_score, key_entities, created_at, analyzed_at
FROM reviews
WHERE form_id = ?
ORDER BY created_at DESC, id DESC
`
