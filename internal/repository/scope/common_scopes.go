package scope

import "gorm.io/gorm"

// OrderByWordOrder keeps session rosters in presentation order.
func OrderByWordOrder(db *gorm.DB) *gorm.DB {
	return db.Order("word_order ASC")
}

// OrderByAttemptNumber keeps a word's attempt ledger in submission order.
func OrderByAttemptNumber(db *gorm.DB) *gorm.DB {
	return db.Order("attempt_number ASC")
}

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
