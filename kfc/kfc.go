/*
  kfc --- kafka connector

  sarama每次NewConsumer出来的consumer都不在同一个分组，
  krang和stg各自消费全部行情，刚好满足需求
*/
package kfc

import (
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/astaxie/beego/logs"
	"github.com/jpillora/backoff"
)

/*
  producer和consumer使用不同的sarama.client
*/
type kfclient struct {
	brokers []string

	producer struct {
		client sarama.Client
		msgq   chan *sarama.ProducerMessage
		exit   chan int
		alive  bool
	}

	consumer struct {
		client sarama.Client
		msgq   chan *sarama.ConsumerMessage
		topics []string
		exit   chan int
		alive  bool
	}
}

var kfc *kfclient = &kfclient{}

const (
	MAX_QUEEN_LEN     = 64
	MAX_CONNECT_TIMES = 5 // 连接broker的最大尝试次数
)

////////////////////////////////////////////////////////////////////

func InitClient(brokers []string) {
	kfc.brokers = brokers
	kfc.producer.msgq = make(chan *sarama.ProducerMessage, MAX_QUEEN_LEN)
	kfc.producer.exit = make(chan int)
	kfc.producer.alive = false

	kfc.consumer.msgq = make(chan *sarama.ConsumerMessage, MAX_QUEEN_LEN)
	kfc.consumer.exit = make(chan int)
	kfc.consumer.alive = false
}

func TobeProducer() error {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Partitioner = sarama.NewRoundRobinPartitioner
	config.Producer.Return.Successes = true

	c, err := connect(kfc.brokers, config, "producer")
	if err != nil {
		return err
	}
	kfc.producer.client = c

	sp, err := sarama.NewSyncProducerFromClient(c)
	if err != nil {
		logs.Error("kfc初始化Producer失败，err[%s]", err.Error())
		c.Close()
		return fmt.Errorf("kfc new producer: %w", err)
	}
	kfc.producer.alive = true

	go syncProducerLoop(sp)
	return nil
}

func TobeConsumer(topics []string) error {
	config := sarama.NewConfig()

	c, err := connect(kfc.brokers, config, "consumer")
	if err != nil {
		return err
	}
	kfc.consumer.client = c
	kfc.consumer.topics = topics

	consumer, err := sarama.NewConsumerFromClient(c)
	if err != nil {
		logs.Error("kfc初始化Consumer失败，err[%s]", err.Error())
		c.Close()
		return fmt.Errorf("kfc new consumer: %w", err)
	}
	pcs, err := collectPartitionConsumer(consumer, topics)
	if err != nil {
		logs.Error("kfc获得分区消费者失败，err[%s]", err.Error())
		consumer.Close()
		c.Close()
		return fmt.Errorf("kfc consume partitions: %w", err)
	}
	if len(pcs) <= 0 {
		consumer.Close()
		c.Close()
		return fmt.Errorf("kfc topics %v have no partition", topics)
	}
	kfc.consumer.alive = true

	go consumerLoop(consumer, pcs)
	return nil
}

func SendMessage(topic string, key string, value []byte) {
	if !kfc.producer.alive {
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	kfc.producer.msgq <- msg
}

func ReadMessages() <-chan *sarama.ConsumerMessage {
	return kfc.consumer.msgq
}

func ExitProducer() {
	if !kfc.producer.alive {
		return
	}
	kfc.producer.exit <- 1
	<-time.After(time.Second)

	// 暂停一会后再关闭client
	kfc.producer.client.Close()
	kfc.producer.alive = false
}

func ExitConsumer() {
	if !kfc.consumer.alive {
		return
	}
	kfc.consumer.exit <- 1
	<-time.After(time.Second)

	kfc.consumer.client.Close()
	kfc.consumer.alive = false
}

////////////////////////////////////////////////////////////////////

/*
  broker可能比我们晚启动，按指数退避重试
*/
func connect(brokers []string, config *sarama.Config, tag string) (sarama.Client, error) {
	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for i := 0; i < MAX_CONNECT_TIMES; i++ {
		c, err := sarama.NewClient(brokers, config)
		if err == nil {
			return c, nil
		}
		lastErr = err
		d := b.Duration()
		logs.Error("kfc %s连接broker%v失败，err[%s]，%v后重试", tag, brokers, err.Error(), d)
		time.Sleep(d)
	}
	return nil, fmt.Errorf("kfc %s connect %v: %w", tag, brokers, lastErr)
}

func collectPartitionConsumer(consumer sarama.Consumer, topics []string) ([]sarama.PartitionConsumer, error) {
	pcs := []sarama.PartitionConsumer{}
	for _, t := range topics {
		partitions, err := consumer.Partitions(t)
		if err != nil {
			return pcs, err
		}
		for _, p := range partitions {
			pc, err := consumer.ConsumePartition(t, p, sarama.OffsetNewest)
			if err != nil {
				return pcs, err
			}
			pcs = append(pcs, pc)
		}
	}
	return pcs, nil
}

func syncProducerLoop(sp sarama.SyncProducer) {
	defer sp.Close()

	for {
		select {
		case msg := <-kfc.producer.msgq:
			p, offset, err := sp.SendMessage(msg)
			if err != nil {
				logs.Error("sarama send fail, partition[%d], offset[%d], err[%s]", p, offset, err.Error())
			}

		case <-kfc.producer.exit:
			logs.Info("kfc producer loop exit.")
			return
		}
	}
}

func consumerLoop(consumer sarama.Consumer, pcs []sarama.PartitionConsumer) {
	defer consumer.Close()

	ch := make(chan struct{})
	for _, p := range pcs {
		go consumeOnePartition(p, ch)
	}

	<-kfc.consumer.exit
	close(ch)
	logs.Info("kfc consumer loop exit.")
}

func consumeOnePartition(pc sarama.PartitionConsumer, ch chan struct{}) {
	defer pc.Close()

	for {
		select {
		case msg := <-pc.Messages():
			select {
			case kfc.consumer.msgq <- msg:
			case <-ch:
				return
			}

		case err := <-pc.Errors():
			if err != nil {
				logs.Error("kfc partition[%s:%d] consume error [%s]", err.Topic, err.Partition, err.Err.Error())
			}

		case <-ch:
			logs.Info("kfc partition loop exit.")
			return
		}
	}
}
