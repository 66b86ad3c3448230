package entity

// Doctor is a member of the medical staff
type Doctor struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Age       int
	Email     string `gorm:"type:varchar(255)"`
}

func (Doctor) TableName() string {
	return "doctors"
}
