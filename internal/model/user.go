package model

import (
    "time"

    "golang.org/x/crypto/bcrypt"
)

// User 用户（派对档案）
type User struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    Username  string    `json:"username" gorm:"type:varchar(32);uniqueIndex;not null"`
    Email     string    `json:"email" gorm:"type:varchar(128);uniqueIndex;not null"`
    Password  string    `json:"-" gorm:"type:varchar(128);not null"`
    Age       int       `json:"age"`
    // Points 游戏化积分总额（由积分流水聚合而来）
    Points    int64     `json:"points" gorm:"index;not null;default:0"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// SetPassword 加密存储密码
func (u *User) SetPassword(plain string) error {
    hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
    if err != nil {
        return err
    }
    u.Password = string(hashed)
    return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(plain string) bool {
    return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
