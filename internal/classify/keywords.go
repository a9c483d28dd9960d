package classify

// Category tags form a closed taxonomy; the classifier assigns exactly
// one of these to every item.
const (
	TagSolanaMeme      = "Solana Meme Coins"
	TagSolanaAirdrop   = "Solana Airdrops"
	TagSolanaLaunch    = "Solana Launches"
	TagSolanaRug       = "Solana Rug Alerts"
	TagSolanaEcosystem = "Solana Ecosystem"
	TagSolanaNFT       = "Solana NFTs"
	TagSolanaDeFi      = "Solana DeFi"
	TagSolanaPump      = "Solana Pump"
	TagSolanaDump      = "Solana Dump"
	TagSolanaGeneral   = "Solana General"

	TagRugAlert = "Rug Alert"
	TagAirdrop  = "Airdrop"
	TagLaunch   = "New Launch"
	TagWhale    = "Whale Activity"
	TagAlpha    = "Alpha"
	TagBitcoin  = "Bitcoin"
	TagEthereum = "Ethereum"
	TagDeFi     = "DeFi"
	TagNFT      = "NFT"
	TagMeme     = "Meme Coin"
	TagPump     = "Pump"
	TagDump     = "Dump"
	TagTrading  = "Trading Analysis"
	TagNews     = "News"
	TagGeneral  = "General Crypto"
)

// keywordGroup is a weighted set of Solana-ecosystem terms. Core terms
// weigh most, protocol names less, peripheral ecosystem mentions least.
type keywordGroup struct {
	weight float64
	terms  []string
}

var solanaKeywordGroups = []keywordGroup{
	{
		weight: 3.0,
		terms: []string{
			"solana", "$sol", "spl token", "solana mobile",
			"firedancer", "solana mainnet", "sol staking", "solana pay",
		},
	},
	{
		weight: 2.0,
		terms: []string{
			"jupiter", "raydium", "orca", "marinade", "jito",
			"drift protocol", "tensor", "magic eden", "phantom wallet",
			"solflare", "bonk", "dogwifhat", "$wif", "pump.fun",
			"metaplex", "helius", "pyth", "wormhole", "marginfi", "kamino",
		},
	},
	{
		weight: 1.0,
		terms: []string{
			"solend", "squads", "backpack wallet", "mad lads", "degods",
			"okay bears", "famous fox", "saga phone", "blinks",
			"compressed nft", "cnft", "helium mobile", "render network",
			"step finance", "star atlas", "aurory", "genopets",
		},
	},
}

// maxSolanaWeight is the maximum attainable weighted sum over all
// Solana keyword groups; solana scores normalize against it.
var maxSolanaWeight = func() float64 {
	var total float64
	for _, g := range solanaKeywordGroups {
		total += g.weight * float64(len(g.terms))
	}
	return total
}()

// rule pairs a keyword set with the tag it yields. Cascades evaluate
// rules in order; the first rule with any matching keyword wins.
type rule struct {
	tag      string
	keywords []string
}

var solanaCascade = []rule{
	{TagSolanaMeme, []string{"bonk", "dogwifhat", "$wif", "meme coin", "memecoin", "meme token", "cat coin"}},
	{TagSolanaAirdrop, []string{"airdrop", "air drop", "token claim", "claim is live"}},
	{TagSolanaLaunch, []string{"launch", "launching", "launched", "tge", "token generation", "presale", "fair launch"}},
	{TagSolanaRug, []string{"rug", "rugged", "scam", "honeypot", "exploit", "drained", "hacked"}},
	{TagSolanaEcosystem, []string{"ecosystem", "partnership", "integration", "upgrade", "mainnet", "validator", "testnet"}},
	{TagSolanaNFT, []string{"nft", "mint", "collection", "floor price", "pfp"}},
	{TagSolanaDeFi, []string{"defi", "liquidity", "yield", "lending", "tvl", "swap", "amm", "staking"}},
	{TagSolanaPump, []string{"pump", "pumping", "mooning", "parabolic", "ath", "all-time high"}},
	{TagSolanaDump, []string{"dump", "dumping", "crash", "plummet", "sell-off", "selloff"}},
}

var generalCascade = []rule{
	{TagRugAlert, []string{"rug", "rugged", "scam", "honeypot", "exploit", "drained", "hacked", "phishing"}},
	{TagAirdrop, []string{"airdrop", "air drop", "token claim", "claim is live"}},
	{TagLaunch, []string{"launch", "launching", "launched", "tge", "ido", "ico", "presale", "fair launch"}},
	{TagWhale, []string{"whale", "large transfer", "accumulation", "wallet moved", "on-chain flow"}},
	{TagAlpha, []string{"alpha", "insider", "early access", "leaked", "before anyone"}},
	{TagBitcoin, []string{"bitcoin", "btc", "satoshi", "halving", "ordinals"}},
	{TagEthereum, []string{"ethereum", "$eth", "vitalik", "layer 2", "rollup", "gas fees"}},
	{TagDeFi, []string{"defi", "liquidity", "yield farming", "lending protocol", "tvl", "dex", "amm"}},
	{TagNFT, []string{"nft", "opensea", "collection", "floor price", "pfp", "mint"}},
	{TagMeme, []string{"meme coin", "memecoin", "meme token", "doge", "shiba", "pepe"}},
	{TagPump, []string{"pump", "pumping", "mooning", "parabolic", "ath", "all-time high"}},
	{TagDump, []string{"dump", "dumping", "crash", "plummet", "capitulation", "sell-off"}},
	{TagTrading, []string{"support", "resistance", "breakout", "chart", "technical analysis", "rsi", "fibonacci", "price target"}},
	{TagNews, []string{"announced", "announcement", "report", "regulation", "sec", "etf", "partnership"}},
}
