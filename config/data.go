package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Data represents the data layer configuration
type Data struct {
	MongoDB *MongoDB `json:"mongodb" yaml:"mongodb"`
	Redis   *Redis   `json:"redis" yaml:"redis"`
}

// MongoDB mongodb config struct
type MongoDB struct {
	Master   *MongoNode   `json:"master" yaml:"master" validate:"required"`
	Slaves   []*MongoNode `json:"slaves" yaml:"slaves"`
	Strategy string       `json:"strategy" yaml:"strategy"`
	Database string       `json:"database" yaml:"database"`
}

// MongoNode mongodb node config
type MongoNode struct {
	URI    string `json:"uri" yaml:"uri"`
	Weight int    `json:"weight" yaml:"weight"`
}

// Redis redis config struct
type Redis struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Username     string        `json:"username" yaml:"username"`
	Password     string        `json:"password" yaml:"password"`
	Db           int           `json:"db" yaml:"db"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
}

// getDataConfig reads the data layer configuration
func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		MongoDB: getMongoDBConfig(v),
		Redis:   getRedisConfig(v),
	}
}

// getMongoDBConfig reads MongoDB configurations
func getMongoDBConfig(v *viper.Viper) *MongoDB {
	return &MongoDB{
		Master: &MongoNode{
			URI: v.GetString("data.mongodb.master.uri"),
		},
		Slaves:   getMongoSlaveConfigs(v),
		Strategy: v.GetString("data.mongodb.strategy"),
		Database: v.GetString("data.mongodb.database"),
	}
}

// getMongoSlaveConfigs reads MongoDB slave configurations
func getMongoSlaveConfigs(v *viper.Viper) []*MongoNode {
	var slaves []*MongoNode

	slavesConfig := v.Get("data.mongodb.slaves")
	if slavesConfig == nil {
		return slaves
	}

	slavesInterface, ok := slavesConfig.([]any)
	if !ok {
		return slaves
	}

	for i := 0; i < len(slavesInterface); i++ {
		slave := &MongoNode{
			URI:    v.GetString(fmt.Sprintf("data.mongodb.slaves.%d.uri", i)),
			Weight: v.GetInt(fmt.Sprintf("data.mongodb.slaves.%d.weight", i)),
		}

		if slave.URI != "" {
			if slave.Weight <= 0 {
				slave.Weight = 1
			}
			slaves = append(slaves, slave)
		}
	}

	return slaves
}

// getRedisConfig reads Redis configurations
func getRedisConfig(v *viper.Viper) *Redis {
	return &Redis{
		Addr:         v.GetString("data.redis.addr"),
		Username:     v.GetString("data.redis.username"),
		Password:     v.GetString("data.redis.password"),
		Db:           v.GetInt("data.redis.db"),
		ReadTimeout:  v.GetDuration("data.redis.read_timeout"),
		WriteTimeout: v.GetDuration("data.redis.write_timeout"),
		DialTimeout:  v.GetDuration("data.redis.dial_timeout"),
	}
}
