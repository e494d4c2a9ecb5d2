package main

import (
	"context"

	dao "reckue_account/internal/dao/mysql"
	"reckue_account/internal/dao/mysql/repository"
	"reckue_account/internal/service/auth"
	"reckue_account/pkg/util/random"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// adminPasswordLength 未配置管理员密码时生成的随机密码长度
const adminPasswordLength = 20

// NewMigrateCmd 迁移表结构，并按配置创建初始管理员
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and bootstrap the admin account",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	db, err := openMySQL(conf)
	if err != nil {
		return err
	}
	defer func() { _ = dao.Close(db) }()

	cmd.Println("Running migrations...")
	if err := dao.AutoMigrate(db); err != nil {
		return err
	}

	boot := conf.BootstrapConfig
	if boot.AdminUsername == "" {
		cmd.Println("Migrations completed successfully")
		return nil
	}

	password := boot.AdminPassword
	generated := password == ""
	if generated {
		if password, err = random.String(adminPasswordLength); err != nil {
			return err
		}
	}

	// 管理员创建不签发令牌，不需要 Redis
	svc := auth.NewAuthService(repository.NewUserRepository(db), nil, newJWTManager(conf))
	created, err := svc.EnsureAdmin(context.Background(), boot.AdminUsername, boot.AdminEmail, password)
	if err != nil {
		return err
	}
	switch {
	case created && generated:
		cmd.Printf("Admin account %q created with generated password: %s\n", boot.AdminUsername, password)
	case created:
		cmd.Printf("Admin account %q created\n", boot.AdminUsername)
	default:
		cmd.Printf("Admin account %q already exists\n", boot.AdminUsername)
	}
	cmd.Println("Migrations completed successfully")
	return nil
}
