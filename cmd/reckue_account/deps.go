package main

import (
	"context"
	"fmt"

	"reckue_account/internal/config"
	dao "reckue_account/internal/dao/mysql"
	"reckue_account/internal/dao/mysql/repository"
	myredis "reckue_account/internal/dao/redis"
	"reckue_account/internal/infrastructure/logger"
	"reckue_account/pkg/util/jwt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps 进程级依赖，由 serve / migrate 共享
type deps struct {
	conf  *config.Config
	db    *gorm.DB
	redis *redis.Client
}

// loadConfig 加载配置并初始化日志
func loadConfig() (*config.Config, error) {
	conf, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(&conf.LogConfig, conf.Mode); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return conf, nil
}

// openMySQL 仅连接数据库，migrate 不需要 Redis
func openMySQL(conf *config.Config) (*gorm.DB, error) {
	db, err := dao.Init(&conf.MysqlConfig, conf.MysqlDSN())
	if err != nil {
		return nil, err
	}
	return db, nil
}

// openDeps 连接 MySQL 与 Redis
func openDeps(ctx context.Context, conf *config.Config) (*deps, error) {
	db, err := openMySQL(conf)
	if err != nil {
		return nil, err
	}
	client, err := myredis.NewClient(ctx, &conf.RedisConfig)
	if err != nil {
		_ = dao.Close(db)
		return nil, err
	}
	return &deps{conf: conf, db: db, redis: client}, nil
}

func (d *deps) repositories() *repository.Repositories {
	return repository.NewRepositories(d.db)
}

func (d *deps) tokenStore() *myredis.RedisTokenStore {
	return myredis.NewRedisTokenStore(d.redis)
}

func newJWTManager(conf *config.Config) *jwt.Manager {
	return jwt.NewManager(jwt.Config{
		Secret:             conf.JWTConfig.Secret,
		Issuer:             conf.JWTConfig.Issuer,
		AccessTokenExpiry:  conf.AccessTokenTTL(),
		RefreshTokenExpiry: conf.RefreshTokenTTL(),
	})
}

// Close 释放连接并刷新日志缓冲
func (d *deps) Close() {
	if err := d.redis.Close(); err != nil {
		zap.L().Warn("close redis", zap.Error(err))
	}
	if err := dao.Close(d.db); err != nil {
		zap.L().Warn("close mysql", zap.Error(err))
	}
	_ = zap.L().Sync()
}
