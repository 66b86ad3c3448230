package entity

// Patient is a person receiving care
type Patient struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Age       int
	Email     string `gorm:"type:varchar(255)"`
}

func (Patient) TableName() string {
	return "patients"
}
