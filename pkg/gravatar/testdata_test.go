package gravatar

const phpProfileFixture = `a:1:{s:5:"entry";a:1:{i:0;a:11:{s:2:"id";s:4:"1234";s:4:"hash";s:32:"d707ca810105c85242fc21505f096814";s:11:"requestHash";s:32:"d707ca810105c85242fc21505f096814";s:10:"profileUrl";s:28:"http://gravatar.com/knutkohl";s:17:"preferredUsername";s:8:"knutkohl";s:12:"thumbnailUrl";s:67:"https://secure.gravatar.com/avatar/d707ca810105c85242fc21505f096814";s:6:"photos";a:1:{i:0;a:2:{s:5:"value";s:67:"https://secure.gravatar.com/avatar/d707ca810105c85242fc21505f096814";s:4:"type";s:9:"thumbnail";}}s:4:"name";a:3:{s:9:"givenName";s:4:"Knut";s:10:"familyName";s:4:"Kohl";s:9:"formatted";s:9:"Knut Kohl";}s:11:"displayName";s:8:"knutkohl";s:4:"urls";a:1:{i:0;a:2:{s:5:"value";s:18:"http://knutkohl.de";s:5:"title";s:8:"Homepage";}}s:6:"emails";a:1:{i:0;a:2:{s:7:"primary";s:4:"true";s:5:"value";s:20:"gravatar@knutkohl.de";}}}}}`

const phpEmptyEntryFixture = `a:1:{s:5:"entry";a:1:{i:0;a:0:{}}}`

const jsonProfileFixture = `{"entry":[{
  "id": 1234,
  "hash": "d707ca810105c85242fc21505f096814",
  "requestHash": "d707ca810105c85242fc21505f096814",
  "profileUrl": "http://gravatar.com/knutkohl",
  "preferredUsername": "knutkohl",
  "thumbnailUrl": "https://secure.gravatar.com/avatar/d707ca810105c85242fc21505f096814",
  "photos": [{"value": "https://secure.gravatar.com/avatar/d707ca810105c85242fc21505f096814", "type": "thumbnail"}],
  "name": {"givenName": "Knut", "familyName": "Kohl", "formatted": "Knut Kohl"},
  "displayName": "knutkohl",
  "urls": [{"value": "http://knutkohl.de", "title": "Homepage"}],
  "emails": [{"primary": "true", "value": "gravatar@knutkohl.de"}]
}]}`

const xmlProfileFixture = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <entry>
    <id>1234</id>
    <hash>d707ca810105c85242fc21505f096814</hash>
    <requestHash>d707ca810105c85242fc21505f096814</requestHash>
    <profileUrl>http://gravatar.com/knutkohl</profileUrl>
    <preferredUsername>knutkohl</preferredUsername>
    <thumbnailUrl>https://secure.gravatar.com/avatar/d707ca810105c85242fc21505f096814</thumbnailUrl>
    <photos>
      <value>https://secure.gravatar.com/avatar/d707ca810105c85242fc21505f096814</value>
      <type>thumbnail</type>
    </photos>
    <name>
      <givenName>Knut</givenName>
      <familyName>Kohl</familyName>
      <formatted>Knut Kohl</formatted>
    </name>
    <displayName>knutkohl</displayName>
    <urls>
      <value>http://knutkohl.de</value>
      <title>Homepage</title>
    </urls>
    <emails>
      <primary>true</primary>
      <value>gravatar@knutkohl.de</value>
    </emails>
  </entry>
</response>`

const vcardProfileFixture = "BEGIN:VCARD\r\n" +
	"VERSION:3.0\r\n" +
	"UID:1234\r\n" +
	"N:Kohl;Knut;;;\r\n" +
	"FN:Knut Kohl\r\n" +
	"NICKNAME:knutkohl\r\n" +
	"URL:http://gravatar.com/knutkohl\r\n" +
	"URL:http://knutkohl.de\r\n" +
	"EMAIL;TYPE=INTERNET;PREF=1:gravatar@knutkohl.de\r\n" +
	"PHOTO;VALUE=uri:https://secure.gravatar.com/avatar/d707ca810105c85242fc21505f096814\r\n" +
	"NOTE:Writes PHP\r\n" +
	"END:VCARD\r\n"

func expectedKnutKohlProfile() Profile {
	return Profile{
		ID:                "1234",
		Hash:              knutKohlHash,
		RequestHash:       knutKohlHash,
		ProfileURL:        "http://gravatar.com/knutkohl",
		PreferredUsername: "knutkohl",
		ThumbnailURL:      "https://secure.gravatar.com/avatar/" + knutKohlHash,
		DisplayName:       "knutkohl",
		Name: ProfileName{
			Formatted:  "Knut Kohl",
			GivenName:  "Knut",
			FamilyName: "Kohl",
		},
		Photos: []Photo{{Value: "https://secure.gravatar.com/avatar/" + knutKohlHash, Type: "thumbnail"}},
		URLs:   []Link{{Value: "http://knutkohl.de", Title: "Homepage"}},
		Emails: []Email{{Value: "gravatar@knutkohl.de", Primary: true}},
	}
}
