package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/possxc/ledger/internal/config"
	gateway "github.com/possxc/ledger/internal/gateways"
	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/internal/queue"
	"github.com/possxc/ledger/pkg/logger"
	"github.com/possxc/ledger/pkg/prom"
	"github.com/possxc/ledger/pkg/redis"
	"github.com/possxc/ledger/pkg/worker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	reminderQ, err := queue.NewQueue(redisAdap, queue.Config{
		Name:              config.Get().ReminderQueueName,
		ConsumerGroup:     config.Get().ReminderConsumerGroup,
		ConsumerName:      config.Get().ReminderConsumerName,
		MaxRetries:        config.Get().ReminderMaxRetries,
		VisibilityTimeout: config.Get().ReminderVisibilityTimeout,
		PollInterval:      config.Get().ReminderPollInterval,
		BatchSize:         config.Get().ReminderBatchSize,
		MaxLen:            config.Get().ReminderQueueMaxLen,
	})
	if err != nil {
		logger.Error("failed creating reminder queue", "error", err)
		return
	}

	client, err := gateway.NewClient(&gateway.Config{
		URL:             config.Get().AlertProviderURL,
		Timeout:         config.Get().AlertTimeout,
		MaxRetries:      config.Get().AlertMaxRetries,
		RetryDelay:      time.Millisecond * 100,
		MaxConns:        100,
		ReadBufferSize:  1024 * 4,
		WriteBufferSize: 1024 * 4,
	})
	if err != nil {
		logger.Error("failed to create alert gateway", "error", err)
		return
	}

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}
	if config.Get().AppDebugMetricsAddr != "" {
		go func() {
			prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}()
	}

	pool := worker.NewPool(1024, config.Get().NotifierWorkers, nil)
	pool.SetWorker(func(workerIndex int, job interface{}) {
		reminder, ok := job.(*model.Reminder)
		if !ok {
			return
		}
		deliver(client, reminder)
	})

	go func() {
		if err := pool.Start(); err != nil {
			logger.Error("worker pool stopped", "error", err)
		}
	}()

	err = reminderQ.Consume(func(ctx context.Context, msg *queue.Message) error {
		var reminder model.Reminder
		if err := json.Unmarshal(msg.Data, &reminder); err != nil {
			logger.Error("dropping undecodable reminder", "message_id", msg.ID, "error", err)
			return nil
		}
		pool.Enqueue(&reminder)
		return nil
	})
	if err != nil {
		logger.Error("failed to start consuming", "error", err)
		return
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case <-c:
		if err := reminderQ.Stop(time.Second * 10); err != nil {
			logger.Error("failed stopping queue", "error", err)
		}
		pool.Exit()
	}
}

func deliver(client *gateway.Client, reminder *model.Reminder) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	start := time.Now()
	resp, err := client.Push(ctx, &gateway.PushRequest{
		ReminderID: reminder.ID,
		OrderID:    reminder.OrderID,
		Title:      reminder.Title,
		Body:       reminder.Body,
		DueDate:    reminder.DueDate,
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		prom.AddReminderDeliveryDuration(elapsed, "failed")
		logger.Error("failed to deliver reminder", "reminder_id", reminder.ID, "order_id", reminder.OrderID, "error", err)
		return
	}

	prom.AddReminderDeliveryDuration(elapsed, strings.ToLower(string(resp.Status)))
	logger.Info("reminder delivered", "reminder_id", reminder.ID, "order_id", reminder.OrderID, "status", resp.Status)
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
