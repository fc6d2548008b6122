package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/config"
	internalKafka "github.com/Xushengqwer/post_admin/internal/core/kafka"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 开发用工具：向内容主题发送一批示例文章事件，可选地再发送删除事件，用于验证索引同步消费者。
func main() {
	var (
		configFile string
		deleteIDs  int64Slice
	)
	flag.StringVar(&configFile, "config", filepath.Join("config", "config.development.yaml"), "指定配置文件的路径")
	flag.Var(&deleteIDs, "delete", "发送完示例文章后再发送删除事件的文章编号，可重复指定")
	flag.Parse()

	var cfg config.AdminConsoleConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("致命错误: 加载配置文件 '%s' 失败: %v", configFile, err)
	}
	cfg.ApplyDefaults()

	logger, err := core.NewZapLogger(cfg.ZapConfig)
	if err != nil {
		log.Fatalf("致命错误: 初始化 ZapLogger 失败: %v", err)
	}
	defer func() { _ = logger.Logger().Sync() }()

	kafkaCfg := cfg.KafkaConfig
	if kafkaCfg.ContentUpsertTopic == "" {
		logger.Fatal("Kafka 配置错误：kafkaConfig.contentUpsertTopic 未设置")
	}
	saramaConfig, err := internalKafka.ConfigureSarama(kafkaCfg, logger)
	if err != nil {
		logger.Fatal("配置 Sarama (Kafka 客户端库) 失败", zap.Error(err))
	}
	producer, err := internalKafka.NewSyncProducer(kafkaCfg, saramaConfig, logger)
	if err != nil {
		logger.Fatal("创建 Kafka 同步生产者失败", zap.Error(err))
	}
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Error("关闭 Kafka 同步生产者时发生错误", zap.Error(err))
		}
	}()

	now := time.Now().UTC()
	samples := []models.ContentDocument{
		{CtntNo: 401, Title: "Go 语言并发模式", Content: "goroutine、channel 与 context 的常见组合方式。", InpUser: "admin", Tags: []string{"go", "concurrency"}},
		{CtntNo: 402, Title: "Kafka 消费者组实践", Content: "分区再均衡、手动提交位移与死信队列。", InpUser: "admin", Tags: []string{"kafka"}},
		{CtntNo: 403, Title: "Elasticsearch 中文检索", Content: "analyzer 的选择以及 multi_match 的字段权重。", InpUser: "editor", Tags: []string{"elasticsearch", "search"}},
		{CtntNo: 404, Title: "Gin 中间件顺序", Content: "追踪、恢复、访问日志与超时中间件的注册顺序。", InpUser: "editor", Tags: []string{"go", "gin"}},
	}

	for i, doc := range samples {
		doc.InpDttm = now.Add(-time.Duration(len(samples)-i) * time.Hour)
		doc.UpdDttm = doc.InpDttm
		payload, err := json.Marshal(models.ContentUpsertEvent{EventID: uuid.NewString(), Content: doc})
		if err != nil {
			logger.Error("序列化文章事件失败", zap.Int64("ctnt_no", doc.CtntNo), zap.Error(err))
			continue
		}
		partition, offset, err := producer.SendMessage(&sarama.ProducerMessage{
			Topic: kafkaCfg.ContentUpsertTopic,
			Key:   sarama.StringEncoder(strconv.FormatInt(doc.CtntNo, 10)),
			Value: sarama.ByteEncoder(payload),
		})
		if err != nil {
			logger.Error("发送文章事件失败", zap.Int64("ctnt_no", doc.CtntNo), zap.Error(err))
			continue
		}
		logger.Info("文章事件已发送",
			zap.Int64("ctnt_no", doc.CtntNo),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset),
		)
	}

	if len(deleteIDs) == 0 {
		return
	}
	publisher := internalKafka.NewDeletionPublisher(producer, kafkaCfg.ContentDeleteTopic, logger)
	for _, id := range deleteIDs {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := publisher.PublishContentDeleted(ctx, id, "content-seeder"); err != nil {
			logger.Error("发送删除事件失败", zap.Int64("ctnt_no", id), zap.Error(err))
		}
		cancel()
	}
	logger.Info("示例事件已全部处理", zap.Int("upserts", len(samples)), zap.Int("deletes", len(deleteIDs)))
}

// int64Slice 可重复的 -delete 参数。
type int64Slice []int64

func (s *int64Slice) String() string {
	out := make([]string, len(*s))
	for i, v := range *s {
		out[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(out, ",") + "]"
}

func (s *int64Slice) Set(v string) error {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	*s = append(*s, id)
	return nil
}
