package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"restro-backend/utils"
)

const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleDriver = "driver"
)

type User struct {
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"index"`
	Password     string `gorm:"not null"`
	Role         string `gorm:"type:varchar(10)"` // 'admin', 'staff' or 'driver'
	Passcode     string `gorm:"type:varchar(6);uniqueIndex"`
	Gender       string `gorm:"type:varchar(10)"`
	MobileNumber string `gorm:"type:varchar(15)"`
	IsStaff      bool   `gorm:"default:false"`
	IsSuperuser  bool   `gorm:"default:false"`
	IsActive     bool   // no gorm default tag, an explicit false must survive the insert
	LastLogin    *time.Time

	gorm.Model
}

// BeforeSave normalizes the staff flags from the role and hashes the
// password when it is not hashed yet.
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	switch u.Role {
	case RoleAdmin:
		u.IsStaff = true
		u.IsSuperuser = true
	case RoleStaff:
		u.IsStaff = true
		u.IsSuperuser = false
	case RoleDriver:
		u.IsStaff = false
		u.IsSuperuser = false
	}

	if u.Password != "" && !strings.HasPrefix(u.Password, "$2a$") && !strings.HasPrefix(u.Password, "$2b$") {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	return nil
}

type LogoInfo struct {
	CompanyName  string `gorm:"not null"`
	PhoneNumber  string `gorm:"type:varchar(20)"`
	Location     string
	OfficeNumber string `gorm:"type:varchar(20)"`
	MainLogo     string
	PrintLogo    string

	gorm.Model
}

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for StringList")
}
