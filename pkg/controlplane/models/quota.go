package models

import "time"

// QuotaAccount tracks per-owner storage usage. One row per user; Used is
// maintained transactionally with every document create/replace/delete and
// always equals the sum of live document sizes for the owner.
type QuotaAccount struct {
	OwnerID   string    `gorm:"primaryKey;size:36" json:"owner_id"`
	Used      int64     `gorm:"not null;default:0" json:"used"`
	Limit     int64     `gorm:"not null;column:byte_limit" json:"limit"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for QuotaAccount.
func (QuotaAccount) TableName() string {
	return "quota_accounts"
}

// Available returns the remaining bytes before the limit is reached.
func (q *QuotaAccount) Available() int64 {
	if q.Used >= q.Limit {
		return 0
	}
	return q.Limit - q.Used
}

// Fits reports whether an additional delta bytes would stay within the limit.
// Delta may be negative (content shrank).
func (q *QuotaAccount) Fits(delta int64) bool {
	return q.Used+delta <= q.Limit
}
