package domain

// Link represents a go link: a short keyword that redirects to a full URL.
//
// OwnerUsername is a plain string reference to a User, not a database
// foreign key. Deleting a user does not delete their links.
type Link struct {
	Keyword       string `gorm:"primaryKey;column:keyword" json:"keyword"`
	URL           string `gorm:"column:url;not null" json:"url"`
	OwnerUsername string `gorm:"column:owner_username;index" json:"ownerUsername"`
	Description   string `gorm:"column:description" json:"description"`
	CreatedAt     string `gorm:"column:created_at;not null" json:"createdAt"`
	ClickCount    int64  `gorm:"column:click_count;not null;default:0" json:"clickCount"`
}

// TableName returns the table name for GORM.
func (Link) TableName() string {
	return "links"
}
