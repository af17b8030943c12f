package colosseumv1

// Amounts and prices are decimal strings, instants are unix seconds where 0
// means unset.

type Price struct {
	BaseAsset  string `json:"base_asset"`
	QuoteAsset string `json:"quote_asset"`
	Price      string `json:"price"`
	ObservedAt int64  `json:"observed_at"`
}

type Asset struct {
	ID        string `json:"id"`
	Ticker    string `json:"ticker"`
	Precision uint32 `json:"precision"`
	Allowed   bool   `json:"allowed"`
}

// Credential type is either TOKEN or BADGE.
type Credential struct {
	Type  string `json:"type"`
	Class string `json:"class"`
	Value string `json:"value"`
}

type Balance struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

type Trade struct {
	ID         string `json:"id"`
	FromAsset  string `json:"from_asset"`
	ToAsset    string `json:"to_asset"`
	FromAmount string `json:"from_amount"`
	ToAmount   string `json:"to_amount"`
	Rate       string `json:"rate"`
	ExecutedAt int64  `json:"executed_at"`
}

type Competition struct {
	RegistrationStart int64  `json:"registration_start,omitempty"`
	RegistrationEnd   int64  `json:"registration_end,omitempty"`
	Start             int64  `json:"start"`
	End               int64  `json:"end"`
	StableAsset       string `json:"stable_asset"`
	InitialGrant      string `json:"initial_grant"`
	Phase             string `json:"phase"`
	Now               int64  `json:"now"`
}

type Standing struct {
	Rank  int32  `json:"rank"`
	Owner string `json:"owner"`
	Total string `json:"total"`
}

type Webhook struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

// Operator messages

type SetPriceRequest struct {
	BaseAsset  string `json:"base_asset"`
	QuoteAsset string `json:"quote_asset"`
	Price      string `json:"price"`
}
type SetPriceReply struct {
	Price *Price `json:"price"`
}

type ListPricesRequest struct{}
type ListPricesReply struct {
	Prices []*Price `json:"prices"`
}

type RegisterAssetRequest struct {
	ID        string `json:"id"`
	Ticker    string `json:"ticker"`
	Precision uint32 `json:"precision"`
}
type RegisterAssetReply struct {
	Asset *Asset `json:"asset"`
}

type AddAllowedAssetRequest struct {
	AssetID string `json:"asset_id"`
}
type AddAllowedAssetReply struct{}

type SetCompetitionTimeRequest struct {
	Time int64 `json:"time"`
}
type SetCompetitionTimeReply struct {
	Competition *Competition `json:"competition"`
}

type AddWebhookRequest struct {
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}
type AddWebhookReply struct {
	ID string `json:"id"`
}

type RemoveWebhookRequest struct {
	ID string `json:"id"`
}
type RemoveWebhookReply struct{}

type ListWebhooksRequest struct {
	Event string `json:"event"`
}
type ListWebhooksReply struct {
	Webhooks []*Webhook `json:"webhooks"`
}

// Shared messages

type ListAssetsRequest struct{}
type ListAssetsReply struct {
	Assets []*Asset `json:"assets"`
}

type GetCompetitionRequest struct{}
type GetCompetitionReply struct {
	Competition *Competition `json:"competition"`
}

type LeaderboardRequest struct{}
type LeaderboardReply struct {
	Standings []*Standing `json:"standings"`
}

// Trader messages

type GetCompetitionTimeRequest struct{}
type GetCompetitionTimeReply struct {
	Time int64 `json:"time"`
}

type GetPriceRequest struct {
	BaseAsset  string `json:"base_asset"`
	QuoteAsset string `json:"quote_asset"`
}
type GetPriceReply struct {
	Price *Price `json:"price"`
}

type RegisterRequest struct {
	Credential *Credential `json:"credential"`
}
type RegisterReply struct {
	Balances []*Balance `json:"balances"`
}

type TradeRequest struct {
	Credential *Credential `json:"credential"`
	FromAsset  string      `json:"from_asset"`
	ToAsset    string      `json:"to_asset"`
	Amount     string      `json:"amount"`
}
type TradeReply struct {
	Trade *Trade `json:"trade"`
}

type QuoteRequest struct {
	FromAsset string `json:"from_asset"`
	ToAsset   string `json:"to_asset"`
	Amount    string `json:"amount"`
}
type QuoteReply struct {
	Amount string `json:"amount"`
	Rate   string `json:"rate"`
}

type GetBalanceRequest struct {
	Credential *Credential `json:"credential"`
}
type GetBalanceReply struct {
	Balances []*Balance `json:"balances"`
}

type ListTradesRequest struct {
	Credential *Credential `json:"credential"`
}
type ListTradesReply struct {
	Trades []*Trade `json:"trades"`
}
