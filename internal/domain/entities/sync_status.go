package entities

// SyncStatus는 인터페이스 동기화 결과 상태를 나타냅니다
type SyncStatus int

const (
	SyncPending SyncStatus = iota
	SyncSucceeded
	SyncFailed
)
