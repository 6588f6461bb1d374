package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/blogfront/api"
	"github.com/eringen/blogfront/content"
)

// searchScript filters the rendered cards on every keystroke.
const searchScript = `(function(){var q=document.getElementById('search');if(!q){return;}var cards=document.querySelectorAll('[data-search]');var empty=document.getElementById('no-results');q.addEventListener('input',function(){var t=q.value.toLowerCase();var n=0;cards.forEach(function(c){var m=c.getAttribute('data-search').indexOf(t)!==-1;c.hidden=!m;if(m){n++;}});empty.hidden=n!==0;});})();`

// Home lists every post with a search box. Items that do not match query are
// rendered hidden.
func Home(page Page, items []ListItem, query string) templ.Component {
	return Layout(page, component(func(p *printer) {
		visible := 0
		for _, it := range items {
			if !it.Hidden {
				visible++
			}
		}
		p.raw(`<section class="home"><h1>Latest Blog Posts</h1>`)
		p.raw(`<form method="get" action="/" class="search" role="search">`,
			`<input type="text" id="search" name="q" placeholder="Search posts..." autocomplete="off" value="`)
		p.text(query)
		p.raw(`"></form>`)
		p.raw(`<div id="no-results" class="empty"`, hiddenAttr(visible != 0), `><p>No posts found. Try a different search term.</p></div>`)
		for _, it := range items {
			p.render(PostCard(it.Post, it.Hidden))
		}
		p.raw(`</section><script>`, searchScript, `</script>`)
	}))
}

// PostCard is the summary of one post on the home page.
func PostCard(post api.Post, hidden bool) templ.Component {
	return component(func(p *printer) {
		p.raw(`<article class="post-card" data-search="`)
		p.text(SearchText(post))
		p.raw(`"`, hiddenAttr(hidden), `><h2><a href="`)
		p.text(PostPath(post.ID))
		p.raw(`">`)
		p.text(post.Title)
		p.raw(`</a></h2>`)
		p.render(byline(post))
		p.raw(`<p class="preview">`)
		p.text(content.Preview(post.Content))
		p.raw(`</p><a href="`)
		p.text(PostPath(post.ID))
		p.raw(`" class="read-more">Read more &rarr;</a></article>`)
	})
}

func byline(post api.Post) templ.Component {
	return component(func(p *printer) {
		p.raw(`<div class="byline"><span>By `)
		p.text(post.Author.Username)
		p.raw(`</span>`)
		if ago := Ago(post.CreatedAt); ago != "" {
			p.raw(`<span class="sep">&bull;</span><time datetime="`)
			p.text(post.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
			p.raw(`">`)
			p.text(ago)
			p.raw(`</time>`)
		}
		p.raw(`</div>`)
	})
}

// PostDetail shows a full post. Edit and delete controls appear only when
// canManage is set.
func PostDetail(page Page, post api.Post, canManage bool, body templ.Component) templ.Component {
	return Layout(page, component(func(p *printer) {
		p.raw(`<article class="post-detail"><h1>`)
		p.text(post.Title)
		p.raw(`</h1><div class="post-meta">`)
		p.render(byline(post))
		if canManage {
			p.raw(`<div class="post-actions"><a href="`)
			p.text(EditPath(post.ID))
			p.raw(`" class="btn btn-primary">Edit</a><a href="`)
			p.text(DeletePath(post.ID))
			p.raw(`" class="btn btn-danger">Delete</a></div>`)
		}
		p.raw(`</div><div class="prose">`)
		p.render(body)
		p.raw(`</div><a href="/" class="back">&larr; Back to all posts</a></article>`)
	}))
}

// DeleteConfirm asks the author to confirm deleting post.
func DeleteConfirm(page Page, post api.Post) templ.Component {
	return Layout(page, component(func(p *printer) {
		p.raw(`<div class="confirm"><h1>Delete post</h1><p>Are you sure you want to delete &ldquo;`)
		p.text(post.Title)
		p.raw(`&rdquo;?</p><form method="post" action="`)
		p.text(DeletePath(post.ID))
		p.raw(`"><input type="hidden" name="_csrf" value="`)
		p.text(page.CSRF)
		p.raw(`"><input type="hidden" name="confirm" value="yes">`,
			`<button type="submit" class="btn btn-danger" data-busy="Deleting...">Delete</button> <a href="`)
		p.text(PostPath(post.ID))
		p.raw(`" class="btn">Cancel</a></form></div>`)
	}))
}

// Profile shows the signed-in user and the posts they wrote.
func Profile(page Page, posts []api.Post) templ.Component {
	return Layout(page, component(func(p *printer) {
		p.raw(`<section class="profile"><h1>Profile</h1><h2>User Information</h2><dl>`)
		p.raw(`<dt>Username:</dt><dd>`)
		p.text(page.Viewer.Username)
		p.raw(`</dd><dt>Email:</dt><dd>`)
		p.text(page.Viewer.Email)
		p.raw(`</dd></dl></section>`)

		p.raw(`<section class="my-posts"><div class="header"><h2>My Posts</h2>`,
			`<a href="/create-post" class="btn btn-primary">Create New Post</a></div>`)
		if len(posts) == 0 {
			p.raw(`<div class="empty"><p>You haven't created any posts yet.</p></div>`)
		}
		for _, post := range posts {
			p.raw(`<div class="my-post"><h3><a href="`)
			p.text(PostPath(post.ID))
			p.raw(`">`)
			p.text(post.Title)
			p.raw(`</a></h3>`)
			if ago := Ago(post.CreatedAt); ago != "" {
				p.raw(`<div class="byline">`)
				p.text(ago)
				p.raw(`</div>`)
			}
			p.raw(`<div class="links"><a href="`)
			p.text(EditPath(post.ID))
			p.raw(`">Edit</a> <a href="`)
			p.text(PostPath(post.ID))
			p.raw(`">View</a></div></div>`)
		}
		p.raw(`</section>`)
	}))
}
