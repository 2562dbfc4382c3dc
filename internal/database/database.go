// Package database gorm 连接与建表
package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/config"
    "github.com/d60-Lab/pressroom/internal/model"
)

// Open 按驱动打开连接。TranslateError 打开后唯一键冲突
// 统一映射为 gorm.ErrDuplicatedKey，slug 重试依赖该行为
func Open(cfg config.Database) (*gorm.DB, error) {
    gcfg := &gorm.Config{TranslateError: true}
    var (
        db  *gorm.DB
        err error
    )
    switch cfg.Driver {
    case "sqlite":
        db, err = gorm.Open(sqlite.Open(cfg.DSN), gcfg)
    case "postgres":
        db, err = gorm.Open(postgres.Open(cfg.DSN), gcfg)
    default:
        return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
    }
    if err != nil {
        return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
    }
    return db, nil
}

// Migrate 初始化表结构
func Migrate(db *gorm.DB) error {
    if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}); err != nil {
        return fmt.Errorf("auto migrate: %w", err)
    }
    return nil
}
