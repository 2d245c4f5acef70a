package models

// User и Contact принадлежат внешней подсистеме учетных записей.
// Здесь только минимальные таблицы, на которые ссылаются внешние ключи.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:150;not null;uniqueIndex"`
	Email    string `gorm:"size:254"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) String() string {
	if u == nil {
		return "None"
	}
	return u.Username
}

// Contact - адрес доставки пользователя
type Contact struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index"`
	User   *User  `gorm:"constraint:OnDelete:CASCADE"`
	City   string `gorm:"size:50"`
	Street string `gorm:"size:100"`
	House  string `gorm:"size:15"`
	Phone  string `gorm:"size:20"`
}

func (Contact) TableName() string {
	return "contacts"
}
