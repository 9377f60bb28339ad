package oracle

import (
	"context"

	"ga4oracle/browserpage"
	"ga4oracle/oracle/pool"
)

// pooledPage bounds concurrent browser-context access through the
// browser pool. Each method acquires a slot for the duration of the
// call only — the page itself isn't held by the pool across an
// analysis, so a slow vision stage on one page doesn't starve DOM
// queries for another.
type pooledPage struct {
	inner browserpage.Page
	pool  *pool.Pool
}

func newPooledPage(inner browserpage.Page, p *pool.Pool) browserpage.Page {
	if inner == nil {
		return nil
	}
	return &pooledPage{inner: inner, pool: p}
}

func (p *pooledPage) URL(ctx context.Context) (out string, err error) {
	err = p.pool.Do(ctx, func(ctx context.Context) error {
		out, err = p.inner.URL(ctx)
		return err
	})
	return
}

func (p *pooledPage) QuerySelectorAll(ctx context.Context, selector string) (out int, err error) {
	err = p.pool.Do(ctx, func(ctx context.Context) error {
		out, err = p.inner.QuerySelectorAll(ctx, selector)
		return err
	})
	return
}

func (p *pooledPage) Evaluate(ctx context.Context, expression string) (out any, err error) {
	err = p.pool.Do(ctx, func(ctx context.Context) error {
		out, err = p.inner.Evaluate(ctx, expression)
		return err
	})
	return
}

func (p *pooledPage) Screenshot(ctx context.Context) (out []byte, err error) {
	err = p.pool.Do(ctx, func(ctx context.Context) error {
		out, err = p.inner.Screenshot(ctx)
		return err
	})
	return
}

func (p *pooledPage) Cookies(ctx context.Context) (out map[string]string, err error) {
	err = p.pool.Do(ctx, func(ctx context.Context) error {
		out, err = p.inner.Cookies(ctx)
		return err
	})
	return
}

func (p *pooledPage) ViewportSize(ctx context.Context) (out browserpage.ViewportSize, err error) {
	err = p.pool.Do(ctx, func(ctx context.Context) error {
		out, err = p.inner.ViewportSize(ctx)
		return err
	})
	return
}
