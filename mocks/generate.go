package mocks

//go:generate mockgen -destination=./mock_multiout.go -package=mocks github.com/rxtech-lab/multiout/pkg/multiout RecordWriter,WriterFactory
//go:generate mockgen -destination=./mock_task.go -package=mocks github.com/rxtech-lab/multiout/pkg/task Committer
