package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB 初始化全局连接
func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true, // 唯一键冲突翻译成 gorm.ErrDuplicatedKey
	})
	if err != nil {
		return err
	}
	DB = db
	return nil
}
