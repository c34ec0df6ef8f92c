package collector

// DefaultFeeds is the stock crypto news feed list, overridable with
// FEED_URLS or per collection run.
var DefaultFeeds = []string{
	"https://cointelegraph.com/rss",
	"https://www.coindesk.com/arc/outboundfeeds/rss",
	"https://www.newsbtc.com/feed/",
	"https://99bitcoins.com/feed/",
	"https://bitcoinethereumnews.com/feed/",
	"https://bitcoinmagazine.com/feed",
	"https://news.bitcoin.com/feed/",
	"https://bitcoinik.com/feed/",
	"https://www.bitrates.com/feed/rss",
	"https://coin24h.com/feed/",
	"https://coincentral.com/news/feed/",
	"https://coincheckup.com/blog/feed/",
	"https://coindoo.com/feed/",
	"https://coinjournal.net/feed/",
	"https://www.cryptobreaking.com/feed/",
	"https://cryptobriefing.com/feed/",
	"https://crypto-economy.com/feed/",
	"https://www.crypto-news-flash.com/feed/",
	"https://www.cryptonewsz.com/feed/",
	"https://www.cryptoninjas.net/feed/",
	"https://cryptopotato.com/feed/",
	"https://cryptoticker.io/en/feed/",
	"https://currencycrypt.net/feed/",
	"https://www.financemagnates.com/cryptocurrency/feed/",
	"https://fullycrypto.com/feed",
	"https://thenewscrypto.com/feed/",
	"https://u.today/rss",
	"https://zycrypto.com/feed/",
}
