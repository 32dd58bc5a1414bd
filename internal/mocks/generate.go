package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/pitscouting --output domain/pitscouting --outpkg pitscoutingmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name BlueAllianceProvider --dir ../usecase --output usecase --outpkg usecasemock --filename bluealliance_provider_mock.go
