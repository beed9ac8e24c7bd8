package adapters

import (
	"github.com/google/wire"
	"github.com/spirit-dao/algebra-deploy/internal/adapters/blockchain"
	"github.com/spirit-dao/algebra-deploy/internal/adapters/compiler"
	"github.com/spirit-dao/algebra-deploy/internal/adapters/contracts"
	"github.com/spirit-dao/algebra-deploy/internal/adapters/fs"
	"github.com/spirit-dao/algebra-deploy/internal/adapters/interactive"
	"github.com/spirit-dao/algebra-deploy/internal/adapters/progress"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewAddressRecordStore,
	wire.Bind(new(usecase.AddressRecordRepository), new(*fs.AddressRecordStore)),
)

// ContractsSet provides compiled artifact lookup and the build step
var ContractsSet = wire.NewSet(
	contracts.NewArtifactRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.ArtifactRepository)),

	compiler.NewRunner,
	wire.Bind(new(usecase.ContractCompiler), new(*compiler.Runner)),
)

// BlockchainSet provides the JSON-RPC chain client
var BlockchainSet = wire.NewSet(
	blockchain.ProvideClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
	wire.Bind(new(usecase.CodeChecker), new(*blockchain.Client)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmAdapter,
	wire.Bind(new(usecase.BroadcastConfirmer), new(*interactive.ConfirmAdapter)),
)

// ProgressSet provides the progress sink
var ProgressSet = wire.NewSet(
	progress.ProvideProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ContractsSet,
	BlockchainSet,
	InteractiveSet,
	ProgressSet,
)
