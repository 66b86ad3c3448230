package entity

// Room is identified by its name, there is no surrogate key
type Room struct {
	RoomName string `gorm:"column:room_name;type:varchar(100);primaryKey"`
}

func (Room) TableName() string {
	return "rooms"
}
