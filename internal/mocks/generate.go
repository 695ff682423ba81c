package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/feed --output domain/feed --outpkg feedmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Writer --dir ../domain/tournament --output domain/tournament --outpkg tournamentmock --filename writer_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Writer --dir ../domain/team --output domain/team --outpkg teammock --filename writer_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Writer --dir ../domain/match --output domain/match --outpkg matchmock --filename writer_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Reader --dir ../domain/rowset --output domain/rowset --outpkg rowsetmock --filename reader_mock.go
