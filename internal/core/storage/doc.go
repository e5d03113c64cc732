// Package storage 提供横幅状态的持久化存储引擎
//
// 结构:
//
//	storage/
//	├── engine/         存储引擎接口
//	│   └── badger/     BadgerDB 实现
//	└── kv/             带前缀隔离的 KV 抽象
//
// 只有在 storage.persistent 为 true 时才会装配本模块，
// 否则横幅状态保存在内存中。
package storage
