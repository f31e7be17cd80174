package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrjoshuak/gravity/types"
)

func TestLinks(t *testing.T) {
	doc := parse(t, `<body><div id="root">
		<a href="/one">First <b>link</b></a>
		<a href="/empty"></a>
		<a>no href</a>
		<p><a href="https://example.com/two">Second</a></p>
	</div><a href="/outside">Outside</a></body>`)

	links := Links(doc.Find("#root"))
	assert.Equal(t, []types.Link{
		{Href: "/one", Text: "First <b>link</b>"},
		{Href: "https://example.com/two", Text: "Second"},
	}, links)

	assert.Nil(t, Links(nil))
}

func TestVideos(t *testing.T) {
	doc := parse(t, `<body><div id="root">
		<iframe src="https://player.example/a" width="640" height="360"></iframe>
		<iframe src="https://player.example/a" width="320" height="180"></iframe>
		<iframe src="https://player.example/b" width="640"></iframe>
		<video src="/clip.mp4" width="100" height="50"></video>
		<object width="400" height="300">
			<param name="movie" value="https://flash.example/movie.swf">
			<embed src="https://flash.example/embed.swf" width="400" height="300">
		</object>
		<embed src="/loose.swf" width="10" height="10">
	</div></body>`)

	videos := Videos(doc.Find("#root"))
	assert.Equal(t, []types.Video{
		{Src: "https://player.example/a", Width: "640", Height: "360"},
		{Src: "/clip.mp4", Width: "100", Height: "50"},
		{Src: "https://flash.example/movie.swf", Width: "400", Height: "300"},
		{Src: "/loose.swf", Width: "10", Height: "10"},
	}, videos)
}

func TestVideosEmpty(t *testing.T) {
	doc := parse(t, `<body><div id="root"><p>text</p></div></body>`)
	assert.Empty(t, Videos(doc.Find("#root")))
	assert.Nil(t, Videos(nil))
}
