package Models

import "time"

type User struct {
	Id        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
