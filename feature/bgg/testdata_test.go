package bgg

const collectionXML = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>
<items totalitems="3" termsofuse="https://boardgamegeek.com/xmlapi/termsofuse">
	<item objecttype="thing" objectid="13" subtype="boardgame" collid="1">
		<name sortindex="1">Catan</name>
		<yearpublished>1995</yearpublished>
		<thumbnail>https://cf.geekdo-images.com/catan_t.jpg</thumbnail>
		<status own="1" prevowned="0" fortrade="0" want="0" wanttoplay="0" wanttobuy="0" wishlist="0" preordered="0"/>
	</item>
	<item objecttype="thing" objectid="822" subtype="boardgame" collid="2">
		<name sortindex="1">Carcassonne</name>
		<status own="0" prevowned="1" fortrade="1" want="0"/>
	</item>
	<item objecttype="thing" objectid="9209" subtype="boardgame" collid="3">
		<name sortindex="1">Ticket to Ride</name>
		<yearpublished>2004</yearpublished>
		<status own="0" prevowned="0" fortrade="0" want="0" wishlist="1"/>
	</item>
</items>`

const detailXML = `<?xml version="1.0" encoding="utf-8"?>
<boardgames termsofuse="https://boardgamegeek.com/xmlapi/termsofuse">
	<boardgame objectid="13">
		<yearpublished>1995</yearpublished>
		<name primary="true" sortindex="1">Catan</name>
		<description>Trade, build and settle.</description>
		<thumbnail>https://cf.geekdo-images.com/catan_detail_t.jpg</thumbnail>
		<boardgamepublisher objectid="37">KOSMOS</boardgamepublisher>
		<boardgamepublisher objectid="4">Mayfair Games</boardgamepublisher>
		<boardgamedesigner objectid="11">Klaus Teuber</boardgamedesigner>
	</boardgame>
</boardgames>`

const detailNoDesignerXML = `<boardgames>
	<boardgame objectid="99">
		<description>Mystery box.</description>
		<boardgamepublisher objectid="5">Self Published</boardgamepublisher>
	</boardgame>
</boardgames>`
