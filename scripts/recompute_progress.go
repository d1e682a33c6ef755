// 手动触发全量进度重算脚本
//
// 正常情况下每次进度写入都会重算对应报名的汇总，无需本脚本。
// 课程目录批量调整（章节/课时上下架）或数据修复后，存量报名的
// 汇总字段会过期，此时跑一遍全量重算。
//
// 用法: go run scripts/recompute_progress.go

package main

import (
	"log"
	"os"

	"lms_tracking_backend/internal/config"
	"lms_tracking_backend/internal/model"
	"lms_tracking_backend/internal/repository"
	"lms_tracking_backend/internal/service"
	"lms_tracking_backend/pkg/database"
	"lms_tracking_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewLessonProgressRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	courseProgress := service.NewCourseProgressService(enrollmentRepo, progressRepo, catalogRepo, nil)

	var enrollmentIDs []string
	if err := db.Model(&model.Enrollment{}).Pluck("id", &enrollmentIDs).Error; err != nil {
		log.Fatalf("读取报名列表失败: %v", err)
	}

	log.Printf("开始重算 %d 条报名的进度汇总...", len(enrollmentIDs))
	failed := 0
	for _, enrollmentID := range enrollmentIDs {
		if err := courseProgress.Recompute(enrollmentID); err != nil {
			failed++
			log.Printf("重算失败 %s: %v", enrollmentID, err)
		}
	}
	log.Printf("完成！成功 %d 条，失败 %d 条", len(enrollmentIDs)-failed, failed)
}
